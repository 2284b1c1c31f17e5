package inventory

import (
	"context"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

func (s *Service) ListPrinters(ctx context.Context, p transport.ListParams) (PrinterPage, error) {
	rows, total, filtered, err := s.repo.ListPrinters(ctx, p)
	if err != nil {
		s.logger.Error("failed to list printers", "error", err)
		return PrinterPage{}, errors.NewInternalError("failed to list printers", err)
	}
	return transport.NewPage(rows, total, filtered, p, PrinterFromDataModel), nil
}

func (s *Service) GetPrinter(ctx context.Context, id int64) (*Printer, error) {
	row, err := s.printer(ctx, id)
	if err != nil {
		return nil, err
	}
	return PrinterFromDataModel(row), nil
}

func (s *Service) CreatePrinter(ctx context.Context, dto *PrinterDTO) (*Printer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRoom(ctx, dto.RoomID); err != nil {
		return nil, err
	}

	row := &inventoryDatamodel.Printer{}
	applyPrinter(row, dto)
	if err := s.repo.CreatePrinter(ctx, row); err != nil {
		s.logger.Error("failed to create printer", "display_name", row.DisplayName, "error", err)
		return nil, errors.NewInternalError("failed to create printer", err)
	}
	s.logger.Info("printer created", "printer_id", row.ID)
	return s.GetPrinter(ctx, row.ID)
}

func (s *Service) UpdatePrinter(ctx context.Context, id int64, dto *PrinterDTO) (*Printer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.printer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoom(ctx, dto.RoomID); err != nil {
		return nil, err
	}

	applyPrinter(row, dto)
	if err := s.repo.UpdatePrinter(ctx, row); err != nil {
		s.logger.Error("failed to update printer", "printer_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update printer", err)
	}
	return s.GetPrinter(ctx, id)
}

func (s *Service) DeletePrinter(ctx context.Context, id int64) error {
	if _, err := s.printer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePrinter(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete printer", err)
	}
	s.logger.Info("printer deleted", "printer_id", id)
	return nil
}

func (s *Service) ListRequests(ctx context.Context, p transport.ListParams, status string) (RequestPage, error) {
	if status != "" {
		if _, ok := requestOrder[status]; !ok {
			return RequestPage{}, validation.FieldError("status", "unknown request status", errors.ErrCodeInvalidStatus)
		}
	}
	rows, total, filtered, err := s.repo.ListRequests(ctx, p, status)
	if err != nil {
		s.logger.Error("failed to list printer requests", "error", err)
		return RequestPage{}, errors.NewInternalError("failed to list printer requests", err)
	}
	return transport.NewPage(rows, total, filtered, p, RequestFromDataModel), nil
}

// CreateRequest opens a toner or part request for a printer.
func (s *Service) CreateRequest(ctx context.Context, u *coreuser.User, dto *PrinterRequestDTO) (*PrinterRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	printer, err := s.repo.GetPrinter(ctx, dto.PrinterID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load printer", err)
	}
	if printer == nil {
		return nil, validation.FieldError("printer_id", "printer not found", errors.ErrCodeRecordNotFound)
	}

	row := &inventoryDatamodel.PrinterRequest{
		PrinterID:   printer.ID,
		Item:        dto.Item,
		Quantity:    int(dto.Quantity),
		Status:      RequestOpen,
		RequestedBy: u.ID,
	}
	if err := s.repo.CreateRequest(ctx, row); err != nil {
		s.logger.Error("failed to create printer request", "printer_id", printer.ID, "error", err)
		return nil, errors.NewInternalError("failed to create printer request", err)
	}
	row.Printer = printer
	s.logger.Info("printer request created", "request_id", row.ID, "printer_id", printer.ID, "username", u.Username)
	return RequestFromDataModel(row), nil
}

// AdvanceRequest moves a request forward through open, ordered and delivered.
func (s *Service) AdvanceRequest(ctx context.Context, id int64, dto *RequestStatusDTO) (*PrinterRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load printer request", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("printer request not found", errors.ErrCodeRecordNotFound)
	}
	if !CanAdvance(row.Status, dto.Status) {
		return nil, validation.FieldError("status", "cannot move a request from "+row.Status+" to "+dto.Status, errors.ErrCodeInvalidStatus)
	}

	if err := s.repo.UpdateRequestStatus(ctx, id, dto.Status); err != nil {
		return nil, errors.NewInternalError("failed to update printer request", err)
	}
	s.logger.Info("printer request advanced", "request_id", id, "from", row.Status, "to", dto.Status)
	row.Status = dto.Status
	return RequestFromDataModel(row), nil
}

// CountOutstanding counts requests that were not delivered yet.
func (s *Service) CountOutstanding(ctx context.Context) (int64, error) {
	return s.repo.CountOutstandingRequests(ctx)
}

func (s *Service) printer(ctx context.Context, id int64) (*inventoryDatamodel.Printer, error) {
	row, err := s.repo.GetPrinter(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load printer", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("printer not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}

func applyPrinter(row *inventoryDatamodel.Printer, dto *PrinterDTO) {
	row.DisplayName = dto.DisplayName
	row.DNSName = dto.DNSName
	row.MACAddress = dto.MACAddress
	row.IPAddress = dto.IPAddress
	row.Model = dto.Model
	row.SerialNumber = dto.SerialNumber
	row.PropertyID = dto.PropertyID
	row.Location = dto.Location
	row.Description = dto.Description
	row.RoomID = dto.RoomID
	row.Room = nil
}
