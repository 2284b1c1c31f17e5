package inventory

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

var (
	ComputerSortColumns = []string{"display_name", "dns_name", "ip_address", "model", "id"}
	PrinterSortColumns  = []string{"display_name", "dns_name", "ip_address", "model", "id"}
	RequestSortColumns  = []string{"created_at", "status", "item", "id"}
)

type RepositoryAPI interface {
	ListComputers(ctx context.Context, p transport.ListParams) ([]*inventoryDatamodel.Computer, int64, int64, error)
	GetComputer(ctx context.Context, id int64) (*inventoryDatamodel.Computer, error)
	GetComputerByDNSName(ctx context.Context, dnsName string) (*inventoryDatamodel.Computer, error)
	CreateComputer(ctx context.Context, c *inventoryDatamodel.Computer) error
	UpdateComputer(ctx context.Context, c *inventoryDatamodel.Computer) error
	DeleteComputer(ctx context.Context, id int64) error

	ListPrinters(ctx context.Context, p transport.ListParams) ([]*inventoryDatamodel.Printer, int64, int64, error)
	GetPrinter(ctx context.Context, id int64) (*inventoryDatamodel.Printer, error)
	CreatePrinter(ctx context.Context, p *inventoryDatamodel.Printer) error
	UpdatePrinter(ctx context.Context, p *inventoryDatamodel.Printer) error
	DeletePrinter(ctx context.Context, id int64) error

	ListRequests(ctx context.Context, p transport.ListParams, status string) ([]*inventoryDatamodel.PrinterRequest, int64, int64, error)
	GetRequest(ctx context.Context, id int64) (*inventoryDatamodel.PrinterRequest, error)
	CreateRequest(ctx context.Context, r *inventoryDatamodel.PrinterRequest) error
	UpdateRequestStatus(ctx context.Context, id int64, status string) error
	CountOutstandingRequests(ctx context.Context) (int64, error)
}

type RoomLookup interface {
	GetRoom(ctx context.Context, id int64) (*location.Room, error)
}

type Service struct {
	repo      RepositoryAPI
	rooms     RoomLookup
	dnsSuffix string
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, rooms RoomLookup, dnsSuffix string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		rooms:     rooms,
		dnsSuffix: strings.TrimPrefix(dnsSuffix, "."),
		logger:    logger,
	}
}

// DNSName derives the host name a computer is registered under.
func (s *Service) DNSName(displayName string) string {
	name := strings.TrimSpace(displayName)
	if s.dnsSuffix == "" {
		return name
	}
	return name + "." + s.dnsSuffix
}

func (s *Service) ListComputers(ctx context.Context, p transport.ListParams) (ComputerPage, error) {
	rows, total, filtered, err := s.repo.ListComputers(ctx, p)
	if err != nil {
		s.logger.Error("failed to list computers", "error", err)
		return ComputerPage{}, errors.NewInternalError("failed to list computers", err)
	}
	return transport.NewPage(rows, total, filtered, p, ComputerFromDataModel), nil
}

func (s *Service) GetComputer(ctx context.Context, id int64) (*Computer, error) {
	row, err := s.computer(ctx, id)
	if err != nil {
		return nil, err
	}
	return ComputerFromDataModel(row), nil
}

func (s *Service) CreateComputer(ctx context.Context, dto *ComputerDTO) (*Computer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row := &inventoryDatamodel.Computer{}
	if err := s.applyComputer(ctx, row, dto); err != nil {
		return nil, err
	}

	if err := s.repo.CreateComputer(ctx, row); err != nil {
		s.logger.Error("failed to create computer", "display_name", row.DisplayName, "error", err)
		return nil, errors.NewInternalError("failed to create computer", err)
	}
	s.logger.Info("computer created", "computer_id", row.ID, "dns_name", row.DNSName)
	return s.GetComputer(ctx, row.ID)
}

func (s *Service) UpdateComputer(ctx context.Context, id int64, dto *ComputerDTO) (*Computer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.computer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyComputer(ctx, row, dto); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateComputer(ctx, row); err != nil {
		s.logger.Error("failed to update computer", "computer_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update computer", err)
	}
	return s.GetComputer(ctx, id)
}

func (s *Service) DeleteComputer(ctx context.Context, id int64) error {
	if _, err := s.computer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteComputer(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete computer", err)
	}
	s.logger.Info("computer deleted", "computer_id", id)
	return nil
}

// applyComputer copies a validated DTO onto row. The DNS name must stay
// unique across computers.
func (s *Service) applyComputer(ctx context.Context, row *inventoryDatamodel.Computer, dto *ComputerDTO) error {
	dnsName := s.DNSName(dto.DisplayName)
	existing, err := s.repo.GetComputerByDNSName(ctx, dnsName)
	if err != nil {
		return errors.NewInternalError("failed to check dns name", err)
	}
	if existing != nil && existing.ID != row.ID {
		return errors.NewConflictError("a computer named "+dto.DisplayName+" already exists", errors.ErrCodeDuplicateRecord)
	}
	if err := s.checkRoom(ctx, dto.RoomID); err != nil {
		return err
	}

	row.DisplayName = dto.DisplayName
	row.DNSName = dnsName
	row.MACAddress = dto.MACAddress
	row.IPAddress = dto.IPAddress
	row.Model = dto.Model
	row.SerialNumber = dto.SerialNumber
	row.PropertyID = dto.PropertyID
	row.Location = dto.Location
	row.DN = dto.DN
	row.Description = dto.Description
	row.DatePurchased = dto.datePurchased
	row.RoomID = dto.RoomID
	row.Room = nil
	return nil
}

func (s *Service) computer(ctx context.Context, id int64) (*inventoryDatamodel.Computer, error) {
	row, err := s.repo.GetComputer(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load computer", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("computer not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}

func (s *Service) checkRoom(ctx context.Context, roomID *int64) error {
	if roomID == nil {
		return nil
	}
	if _, err := s.rooms.GetRoom(ctx, *roomID); err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeNotFound {
			return validation.FieldError("room_id", "room not found", errors.ErrCodeRecordNotFound)
		}
		return err
	}
	return nil
}
