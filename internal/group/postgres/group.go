package postgres

import (
	"context"
	"errors"

	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	"github.com/rowalls/uh-internal-project/internal/group"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.RepositoryAPI {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) List(ctx context.Context) ([]*directoryDatamodel.Group, error) {
	var groups []*directoryDatamodel.Group
	err := r.db.WithContext(ctx).Order("display_name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*directoryDatamodel.Group, error) {
	var g directoryDatamodel.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) GetByDN(ctx context.Context, dn string) (*directoryDatamodel.Group, error) {
	var g directoryDatamodel.Group
	if err := r.db.WithContext(ctx).Where("LOWER(distinguished_name) = LOWER(?)", dn).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) Create(ctx context.Context, g *directoryDatamodel.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// Delete removes the group together with its class and user memberships.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM permission_class_groups WHERE directory_group_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_directory_groups WHERE directory_group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&directoryDatamodel.Group{}, id).Error
	})
}
