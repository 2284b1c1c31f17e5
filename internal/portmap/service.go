package portmap

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	portmapDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/portmap"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

var (
	PortSortColumns        = []string{"jack", "switch_name", "switch_ip", "vlan", "id"}
	AccessPointSortColumns = []string{"name", "ip_address", "type", "id"}
)

type PortFilter struct {
	RoomID *int64
}

type RepositoryAPI interface {
	ListPorts(ctx context.Context, p transport.ListParams, filter PortFilter) ([]*portmapDatamodel.Port, int64, int64, error)
	GetPort(ctx context.Context, id int64) (*portmapDatamodel.Port, error)
	CreatePort(ctx context.Context, port *portmapDatamodel.Port) error
	UpdatePort(ctx context.Context, port *portmapDatamodel.Port) error
	DeletePort(ctx context.Context, id int64) error

	ListAccessPoints(ctx context.Context, p transport.ListParams) ([]*portmapDatamodel.AccessPoint, int64, int64, error)
	GetAccessPoint(ctx context.Context, id int64) (*portmapDatamodel.AccessPoint, error)
	CreateAccessPoint(ctx context.Context, ap *portmapDatamodel.AccessPoint) error
	UpdateAccessPoint(ctx context.Context, ap *portmapDatamodel.AccessPoint) error
	DeleteAccessPoint(ctx context.Context, id int64) error
}

type RoomLookup interface {
	GetRoom(ctx context.Context, id int64) (*location.Room, error)
}

type Service struct {
	repo   RepositoryAPI
	rooms  RoomLookup
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, rooms RoomLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, rooms: rooms, logger: logger}
}

func (s *Service) ListPorts(ctx context.Context, p transport.ListParams, filter PortFilter) (PortPage, error) {
	rows, total, filtered, err := s.repo.ListPorts(ctx, p, filter)
	if err != nil {
		s.logger.Error("failed to list ports", "error", err)
		return PortPage{}, errors.NewInternalError("failed to list ports", err)
	}
	return transport.NewPage(rows, total, filtered, p, PortFromDataModel), nil
}

func (s *Service) GetPort(ctx context.Context, id int64) (*Port, error) {
	row, err := s.port(ctx, id)
	if err != nil {
		return nil, err
	}
	return PortFromDataModel(row), nil
}

func (s *Service) CreatePort(ctx context.Context, dto *PortDTO) (*Port, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.rooms.GetRoom(ctx, dto.RoomID); err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeNotFound {
			return nil, validation.FieldError("room_id", "room not found", errors.ErrCodeRecordNotFound)
		}
		return nil, err
	}

	row := &portmapDatamodel.Port{
		RoomID:     dto.RoomID,
		Jack:       dto.Jack,
		SwitchIP:   strings.TrimSpace(dto.SwitchIP),
		SwitchName: strings.TrimSpace(dto.SwitchName),
		Blade:      int(dto.Blade),
		PortNumber: int(dto.Port),
		VLAN:       strings.TrimSpace(dto.VLAN),
		Active:     true,
	}
	if err := s.repo.CreatePort(ctx, row); err != nil {
		s.logger.Error("failed to create port", "jack", row.Jack, "error", err)
		return nil, errors.NewInternalError("failed to create port", err)
	}
	s.logger.Info("port created", "port_id", row.ID, "jack", row.Jack)
	return PortFromDataModel(row), nil
}

func (s *Service) UpdatePort(ctx context.Context, id int64, dto *PortUpdateDTO) (*Port, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.port(ctx, id)
	if err != nil {
		return nil, err
	}

	row.SwitchIP = strings.TrimSpace(dto.SwitchIP)
	row.SwitchName = strings.TrimSpace(dto.SwitchName)
	row.Blade = int(dto.Blade)
	row.PortNumber = int(dto.Port)
	row.VLAN = strings.TrimSpace(dto.VLAN)
	return s.savePort(ctx, row)
}

// SetActive toggles whether a port is patched in.
func (s *Service) SetActive(ctx context.Context, id int64, dto *PortStatusDTO) (*Port, error) {
	row, err := s.port(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Active = dto.Active
	return s.savePort(ctx, row)
}

func (s *Service) DeletePort(ctx context.Context, id int64) error {
	if _, err := s.port(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePort(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete port", err)
	}
	s.logger.Info("port deleted", "port_id", id)
	return nil
}

func (s *Service) ListAccessPoints(ctx context.Context, p transport.ListParams) (AccessPointPage, error) {
	rows, total, filtered, err := s.repo.ListAccessPoints(ctx, p)
	if err != nil {
		s.logger.Error("failed to list access points", "error", err)
		return AccessPointPage{}, errors.NewInternalError("failed to list access points", err)
	}
	return transport.NewPage(rows, total, filtered, p, AccessPointFromDataModel), nil
}

func (s *Service) CreateAccessPoint(ctx context.Context, dto *AccessPointDTO) (*AccessPoint, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	port, err := s.portRef(ctx, dto.PortID)
	if err != nil {
		return nil, err
	}

	row := &portmapDatamodel.AccessPoint{}
	applyAccessPoint(row, dto)
	if err := s.repo.CreateAccessPoint(ctx, row); err != nil {
		s.logger.Error("failed to create access point", "name", row.Name, "error", err)
		return nil, errors.NewInternalError("failed to create access point", err)
	}
	row.Port = port
	s.logger.Info("access point created", "access_point_id", row.ID, "port_id", port.ID)
	return AccessPointFromDataModel(row), nil
}

func (s *Service) UpdateAccessPoint(ctx context.Context, id int64, dto *AccessPointDTO) (*AccessPoint, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetAccessPoint(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load access point", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("access point not found", errors.ErrCodeRecordNotFound)
	}
	port, err := s.portRef(ctx, dto.PortID)
	if err != nil {
		return nil, err
	}

	applyAccessPoint(row, dto)
	if err := s.repo.UpdateAccessPoint(ctx, row); err != nil {
		return nil, errors.NewInternalError("failed to update access point", err)
	}
	row.Port = port
	return AccessPointFromDataModel(row), nil
}

func (s *Service) DeleteAccessPoint(ctx context.Context, id int64) error {
	row, err := s.repo.GetAccessPoint(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to load access point", err)
	}
	if row == nil {
		return errors.NewNotFoundError("access point not found", errors.ErrCodeRecordNotFound)
	}
	if err := s.repo.DeleteAccessPoint(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete access point", err)
	}
	return nil
}

func (s *Service) savePort(ctx context.Context, row *portmapDatamodel.Port) (*Port, error) {
	if err := s.repo.UpdatePort(ctx, row); err != nil {
		s.logger.Error("failed to update port", "port_id", row.ID, "error", err)
		return nil, errors.NewInternalError("failed to update port", err)
	}
	return PortFromDataModel(row), nil
}

func (s *Service) port(ctx context.Context, id int64) (*portmapDatamodel.Port, error) {
	row, err := s.repo.GetPort(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load port", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("port not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}

// portRef loads the port an access point is plugged into.
func (s *Service) portRef(ctx context.Context, id int64) (*portmapDatamodel.Port, error) {
	row, err := s.repo.GetPort(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load port", err)
	}
	if row == nil {
		return nil, validation.FieldError("port_id", "port not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}

func applyAccessPoint(row *portmapDatamodel.AccessPoint, dto *AccessPointDTO) {
	row.Name = dto.Name
	row.PortID = dto.PortID
	row.PropertyID = strings.TrimSpace(dto.PropertyID)
	row.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	row.MACAddress = dto.MACAddress
	row.IPAddress = dto.IPAddress
	row.Type = dto.Type
	row.Port = nil
}
