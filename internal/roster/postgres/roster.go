package postgres

import (
	"context"
	"errors"

	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	rosterDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/roster"
	"github.com/rowalls/uh-internal-project/internal/roster"
	"gorm.io/gorm"
)

type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) roster.RepositoryAPI {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Group").Preload("Buildings")
}

func (r *MappingRepository) ListMappings(ctx context.Context) ([]*rosterDatamodel.CSDMapping, error) {
	var rows []*rosterDatamodel.CSDMapping
	err := r.preloaded(ctx).Order("domain").Find(&rows).Error
	return rows, err
}

func (r *MappingRepository) GetMapping(ctx context.Context, id int64) (*rosterDatamodel.CSDMapping, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MappingRepository) GetMappingByDomain(ctx context.Context, domain string) (*rosterDatamodel.CSDMapping, error) {
	return r.first(ctx, "domain = ?", domain)
}

func (r *MappingRepository) MappingsByEmail(ctx context.Context, email string) ([]*rosterDatamodel.CSDMapping, error) {
	var rows []*rosterDatamodel.CSDMapping
	err := r.preloaded(ctx).Where("LOWER(email) = LOWER(?)", email).Order("domain").Find(&rows).Error
	return rows, err
}

func (r *MappingRepository) CreateMapping(ctx context.Context, m *rosterDatamodel.CSDMapping, buildingIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Group", "Buildings").Create(m).Error; err != nil {
			return err
		}
		return replaceBuildings(tx, m, buildingIDs)
	})
}

func (r *MappingRepository) UpdateMapping(ctx context.Context, m *rosterDatamodel.CSDMapping, buildingIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Group", "Buildings").Save(m).Error; err != nil {
			return err
		}
		return replaceBuildings(tx, m, buildingIDs)
	})
}

func (r *MappingRepository) DeleteMapping(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM csd_mapping_buildings WHERE csd_mapping_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&rosterDatamodel.CSDMapping{}, id).Error
	})
}

func (r *MappingRepository) GroupExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&directoryDatamodel.Group{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MappingRepository) first(ctx context.Context, query string, arg interface{}) (*rosterDatamodel.CSDMapping, error) {
	var row rosterDatamodel.CSDMapping
	if err := r.preloaded(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func replaceBuildings(tx *gorm.DB, m *rosterDatamodel.CSDMapping, buildingIDs []int64) error {
	buildings := []locationDatamodel.Building{}
	if len(buildingIDs) > 0 {
		if err := tx.Where("id IN ?", buildingIDs).Find(&buildings).Error; err != nil {
			return err
		}
	}
	return tx.Model(m).Association("Buildings").Replace(buildings)
}
