package postgres

import (
	"context"
	"errors"

	"github.com/rowalls/uh-internal-project/internal/core/common/listing"
	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	"github.com/rowalls/uh-internal-project/internal/inventory"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"gorm.io/gorm"
)

const roomPreload = "Room.Building.Community"

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ListComputers(ctx context.Context, p transport.ListParams) ([]*inventoryDatamodel.Computer, int64, int64, error) {
	var rows []*inventoryDatamodel.Computer
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"display_name", "dns_name", "mac_address", "ip_address", "model", "serial_number", "property_id"},
		Preloads:      []string{roomPreload},
	}, &rows)
	return rows, total, filtered, err
}

func (r *InventoryRepository) GetComputer(ctx context.Context, id int64) (*inventoryDatamodel.Computer, error) {
	var row inventoryDatamodel.Computer
	if err := r.db.WithContext(ctx).Preload(roomPreload).First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *InventoryRepository) GetComputerByDNSName(ctx context.Context, dnsName string) (*inventoryDatamodel.Computer, error) {
	var row inventoryDatamodel.Computer
	if err := r.db.WithContext(ctx).Where("LOWER(dns_name) = LOWER(?)", dnsName).First(&row).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *InventoryRepository) CreateComputer(ctx context.Context, c *inventoryDatamodel.Computer) error {
	return r.db.WithContext(ctx).Omit("Room").Create(c).Error
}

func (r *InventoryRepository) UpdateComputer(ctx context.Context, c *inventoryDatamodel.Computer) error {
	return r.db.WithContext(ctx).Omit("Room").Save(c).Error
}

func (r *InventoryRepository) DeleteComputer(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&inventoryDatamodel.Computer{}, id).Error
}

func (r *InventoryRepository) ListPrinters(ctx context.Context, p transport.ListParams) ([]*inventoryDatamodel.Printer, int64, int64, error) {
	var rows []*inventoryDatamodel.Printer
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"display_name", "dns_name", "mac_address", "ip_address", "model", "serial_number", "property_id"},
		Preloads:      []string{roomPreload},
	}, &rows)
	return rows, total, filtered, err
}

func (r *InventoryRepository) GetPrinter(ctx context.Context, id int64) (*inventoryDatamodel.Printer, error) {
	var row inventoryDatamodel.Printer
	if err := r.db.WithContext(ctx).Preload(roomPreload).First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *InventoryRepository) CreatePrinter(ctx context.Context, p *inventoryDatamodel.Printer) error {
	return r.db.WithContext(ctx).Omit("Room").Create(p).Error
}

func (r *InventoryRepository) UpdatePrinter(ctx context.Context, p *inventoryDatamodel.Printer) error {
	return r.db.WithContext(ctx).Omit("Room").Save(p).Error
}

// DeletePrinter removes the printer together with its requests.
func (r *InventoryRepository) DeletePrinter(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("printer_id = ?", id).Delete(&inventoryDatamodel.PrinterRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inventoryDatamodel.Printer{}, id).Error
	})
}

func (r *InventoryRepository) ListRequests(ctx context.Context, p transport.ListParams, status string) ([]*inventoryDatamodel.PrinterRequest, int64, int64, error) {
	var rows []*inventoryDatamodel.PrinterRequest
	total, filtered, err := listing.Fetch(r.db.WithContext(ctx), p, listing.Options{
		SearchColumns: []string{"item"},
		Preloads:      []string{"Printer"},
		Filter: func(q *gorm.DB) *gorm.DB {
			if status != "" {
				q = q.Where("status = ?", status)
			}
			return q
		},
	}, &rows)
	return rows, total, filtered, err
}

func (r *InventoryRepository) GetRequest(ctx context.Context, id int64) (*inventoryDatamodel.PrinterRequest, error) {
	var row inventoryDatamodel.PrinterRequest
	if err := r.db.WithContext(ctx).Preload("Printer").First(&row, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &row, nil
}

func (r *InventoryRepository) CreateRequest(ctx context.Context, req *inventoryDatamodel.PrinterRequest) error {
	return r.db.WithContext(ctx).Omit("Printer").Create(req).Error
}

func (r *InventoryRepository) UpdateRequestStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&inventoryDatamodel.PrinterRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *InventoryRepository) CountOutstandingRequests(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&inventoryDatamodel.PrinterRequest{}).
		Where("status <> ?", inventory.RequestDelivered).
		Count(&n).Error
	return n, err
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
