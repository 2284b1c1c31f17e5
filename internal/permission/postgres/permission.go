package postgres

import (
	"context"
	"errors"

	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	"github.com/rowalls/uh-internal-project/internal/permission"
	"gorm.io/gorm"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) permission.RepositoryAPI {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) List(ctx context.Context) ([]*permissionDatamodel.Class, error) {
	var classes []*permissionDatamodel.Class
	err := r.db.WithContext(ctx).Preload("Groups").Order("name ASC").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*permissionDatamodel.Class, error) {
	var class permissionDatamodel.Class
	err := r.db.WithContext(ctx).Preload("Groups").Where("id = ?", id).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) GetByName(ctx context.Context, name string) (*permissionDatamodel.Class, error) {
	var class permissionDatamodel.Class
	err := r.db.WithContext(ctx).Preload("Groups").Where("name = ?", name).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) Create(ctx context.Context, class *permissionDatamodel.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *ClassRepository) AddGroup(ctx context.Context, classID, groupID int64) error {
	class := &permissionDatamodel.Class{ID: classID}
	return r.db.WithContext(ctx).Model(class).Association("Groups").Append(&directoryDatamodel.Group{ID: groupID})
}

func (r *ClassRepository) RemoveGroup(ctx context.Context, classID, groupID int64) error {
	class := &permissionDatamodel.Class{ID: classID}
	return r.db.WithContext(ctx).Model(class).Association("Groups").Delete(&directoryDatamodel.Group{ID: groupID})
}

func (r *ClassRepository) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&directoryDatamodel.Group{}).Where("id = ?", groupID).Count(&count).Error
	return count > 0, err
}
