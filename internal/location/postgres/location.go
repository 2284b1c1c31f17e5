package postgres

import (
	"context"
	"errors"

	"github.com/rowalls/uh-internal-project/internal/core/common/listing"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) location.RepositoryAPI {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListCommunities(ctx context.Context) ([]*locationDatamodel.Community, error) {
	var rows []*locationDatamodel.Community
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (r *LocationRepository) GetCommunity(ctx context.Context, id int64) (*locationDatamodel.Community, error) {
	var row locationDatamodel.Community
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *LocationRepository) CreateCommunity(ctx context.Context, c *locationDatamodel.Community) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *LocationRepository) DeleteCommunity(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&locationDatamodel.Community{}, id).Error
}

func (r *LocationRepository) ListBuildings(ctx context.Context, communityID *int64) ([]*locationDatamodel.Building, error) {
	var rows []*locationDatamodel.Building
	q := r.db.WithContext(ctx).Preload("Community").Order("name")
	if communityID != nil {
		q = q.Where("community_id = ?", *communityID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *LocationRepository) GetBuilding(ctx context.Context, id int64) (*locationDatamodel.Building, error) {
	var row locationDatamodel.Building
	if err := r.db.WithContext(ctx).Preload("Community").First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *LocationRepository) CreateBuilding(ctx context.Context, b *locationDatamodel.Building) error {
	return r.db.WithContext(ctx).Omit("Community").Create(b).Error
}

func (r *LocationRepository) DeleteBuilding(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&locationDatamodel.Building{}, id).Error
}

func (r *LocationRepository) ListRooms(ctx context.Context, p transport.ListParams, filter location.RoomFilter) ([]*locationDatamodel.Room, int64, int64, error) {
	var rows []*locationDatamodel.Room
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"name"},
		Preloads:      []string{"Building.Community"},
		Filter: func(q *gorm.DB) *gorm.DB {
			if filter.BuildingID != nil {
				q = q.Where("building_id = ?", *filter.BuildingID)
			}
			return q
		},
	}, &rows)
	return rows, total, filtered, err
}

func (r *LocationRepository) GetRoom(ctx context.Context, id int64) (*locationDatamodel.Room, error) {
	var row locationDatamodel.Room
	if err := r.db.WithContext(ctx).Preload("Building.Community").First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *LocationRepository) CreateRoom(ctx context.Context, room *locationDatamodel.Room) error {
	return r.db.WithContext(ctx).Omit("Building").Create(room).Error
}

func (r *LocationRepository) UpdateRoom(ctx context.Context, room *locationDatamodel.Room) error {
	return r.db.WithContext(ctx).Omit("Building").Save(room).Error
}

func (r *LocationRepository) DeleteRoom(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&locationDatamodel.Room{}, id).Error
}

func (r *LocationRepository) CountBuildings(ctx context.Context, communityID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&locationDatamodel.Building{}).Where("community_id = ?", communityID).Count(&n).Error
	return n, err
}

func (r *LocationRepository) CountRooms(ctx context.Context, buildingID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&locationDatamodel.Room{}).Where("building_id = ?", buildingID).Count(&n).Error
	return n, err
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
