package postgres

import (
	"context"
	"errors"

	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	"github.com/rowalls/uh-internal-project/internal/navbar"
	"gorm.io/gorm"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) navbar.RepositoryAPI {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) List(ctx context.Context) ([]*navbarDatamodel.Link, error) {
	var links []*navbarDatamodel.Link
	err := r.db.WithContext(ctx).
		Preload("PermissionClasses").
		Order("sequence_index ASC, id ASC").
		Find(&links).Error
	return links, err
}

func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*navbarDatamodel.Link, error) {
	var link navbarDatamodel.Link
	if err := r.db.WithContext(ctx).Preload("PermissionClasses").Where("id = ?", id).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) Create(ctx context.Context, link *navbarDatamodel.Link, classIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PermissionClasses").Create(link).Error; err != nil {
			return err
		}
		return replaceClasses(tx, link, classIDs)
	})
}

func (r *LinkRepository) Update(ctx context.Context, link *navbarDatamodel.Link, classIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PermissionClasses").Save(link).Error; err != nil {
			return err
		}
		return replaceClasses(tx, link, classIDs)
	})
}

// Delete removes the link and the links grouped under it.
func (r *LinkRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&navbarDatamodel.Link{}).Where("id = ? OR parent_id = ?", id, id).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM navbar_link_permission_classes WHERE navbar_link_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&navbarDatamodel.Link{}).Error
	})
}

func (r *LinkRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&navbarDatamodel.Link{}).Where("parent_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *LinkRepository) CountClasses(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&permissionDatamodel.Class{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func replaceClasses(tx *gorm.DB, link *navbarDatamodel.Link, classIDs []int64) error {
	classes := []permissionDatamodel.Class{}
	if len(classIDs) > 0 {
		if err := tx.Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
			return err
		}
	}
	return tx.Model(link).Association("PermissionClasses").Replace(classes)
}
