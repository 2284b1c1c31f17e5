package postgres

import (
	"context"
	"errors"

	"github.com/rowalls/uh-internal-project/internal/core/common/listing"
	portmapDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/portmap"
	"github.com/rowalls/uh-internal-project/internal/portmap"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"gorm.io/gorm"
)

// PortmapRepository works against the portmap store only.
type PortmapRepository struct {
	db *gorm.DB
}

func NewPortmapRepository(db *gorm.DB) portmap.RepositoryAPI {
	return &PortmapRepository{db: db}
}

func (r *PortmapRepository) ListPorts(ctx context.Context, p transport.ListParams, filter portmap.PortFilter) ([]*portmapDatamodel.Port, int64, int64, error) {
	var rows []*portmapDatamodel.Port
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"jack", "switch_name", "switch_ip", "vlan"},
		Filter: func(q *gorm.DB) *gorm.DB {
			if filter.RoomID != nil {
				q = q.Where("room_id = ?", *filter.RoomID)
			}
			return q
		},
	}, &rows)
	return rows, total, filtered, err
}

func (r *PortmapRepository) GetPort(ctx context.Context, id int64) (*portmapDatamodel.Port, error) {
	var row portmapDatamodel.Port
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *PortmapRepository) CreatePort(ctx context.Context, port *portmapDatamodel.Port) error {
	return r.db.WithContext(ctx).Create(port).Error
}

func (r *PortmapRepository) UpdatePort(ctx context.Context, port *portmapDatamodel.Port) error {
	return r.db.WithContext(ctx).Save(port).Error
}

// DeletePort removes the port and any access point plugged into it.
func (r *PortmapRepository) DeletePort(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("port_id = ?", id).Delete(&portmapDatamodel.AccessPoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&portmapDatamodel.Port{}, id).Error
	})
}

func (r *PortmapRepository) ListAccessPoints(ctx context.Context, p transport.ListParams) ([]*portmapDatamodel.AccessPoint, int64, int64, error) {
	var rows []*portmapDatamodel.AccessPoint
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"name", "mac_address", "ip_address", "property_id", "serial_number"},
		Preloads:      []string{"Port"},
	}, &rows)
	return rows, total, filtered, err
}

func (r *PortmapRepository) GetAccessPoint(ctx context.Context, id int64) (*portmapDatamodel.AccessPoint, error) {
	var row portmapDatamodel.AccessPoint
	if err := r.db.WithContext(ctx).Preload("Port").First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *PortmapRepository) CreateAccessPoint(ctx context.Context, ap *portmapDatamodel.AccessPoint) error {
	return r.db.WithContext(ctx).Omit("Port").Create(ap).Error
}

func (r *PortmapRepository) UpdateAccessPoint(ctx context.Context, ap *portmapDatamodel.AccessPoint) error {
	return r.db.WithContext(ctx).Omit("Port").Save(ap).Error
}

func (r *PortmapRepository) DeleteAccessPoint(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&portmapDatamodel.AccessPoint{}, id).Error
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
