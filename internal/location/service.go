package location

import (
	"context"
	"log/slog"

	errors "github.com/rowalls/uh-internal-project/internal"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

// RoomSortColumns are the columns a room listing may be ordered by.
var RoomSortColumns = []string{"name", "id"}

type RoomFilter struct {
	BuildingID *int64
}

type RepositoryAPI interface {
	ListCommunities(ctx context.Context) ([]*locationDatamodel.Community, error)
	GetCommunity(ctx context.Context, id int64) (*locationDatamodel.Community, error)
	CreateCommunity(ctx context.Context, c *locationDatamodel.Community) error
	DeleteCommunity(ctx context.Context, id int64) error

	ListBuildings(ctx context.Context, communityID *int64) ([]*locationDatamodel.Building, error)
	GetBuilding(ctx context.Context, id int64) (*locationDatamodel.Building, error)
	CreateBuilding(ctx context.Context, b *locationDatamodel.Building) error
	DeleteBuilding(ctx context.Context, id int64) error

	ListRooms(ctx context.Context, p transport.ListParams, filter RoomFilter) ([]*locationDatamodel.Room, int64, int64, error)
	GetRoom(ctx context.Context, id int64) (*locationDatamodel.Room, error)
	CreateRoom(ctx context.Context, r *locationDatamodel.Room) error
	UpdateRoom(ctx context.Context, r *locationDatamodel.Room) error
	DeleteRoom(ctx context.Context, id int64) error
	CountBuildings(ctx context.Context, communityID int64) (int64, error)
	CountRooms(ctx context.Context, buildingID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListCommunities(ctx context.Context) ([]*Community, error) {
	rows, err := s.repo.ListCommunities(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list communities", err)
	}
	out := make([]*Community, 0, len(rows))
	for _, row := range rows {
		out = append(out, CommunityFromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateCommunity(ctx context.Context, dto *CommunityDTO) (*Community, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row := &locationDatamodel.Community{Name: dto.Name}
	if err := s.repo.CreateCommunity(ctx, row); err != nil {
		s.logger.Error("failed to create community", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to create community", err)
	}
	s.logger.Info("community created", "community_id", row.ID, "name", row.Name)
	return CommunityFromDataModel(row), nil
}

// DeleteCommunity refuses to remove a community that still has buildings.
func (s *Service) DeleteCommunity(ctx context.Context, id int64) error {
	row, err := s.repo.GetCommunity(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to load community", err)
	}
	if row == nil {
		return errors.NewNotFoundError("community not found", errors.ErrCodeRecordNotFound)
	}

	n, err := s.repo.CountBuildings(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to count buildings", err)
	}
	if n > 0 {
		return errors.NewConflictError("community still has buildings", errors.ErrCodeInUse)
	}

	if err := s.repo.DeleteCommunity(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete community", err)
	}
	s.logger.Info("community deleted", "community_id", id)
	return nil
}

func (s *Service) ListBuildings(ctx context.Context, communityID *int64) ([]*Building, error) {
	rows, err := s.repo.ListBuildings(ctx, communityID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list buildings", err)
	}
	out := make([]*Building, 0, len(rows))
	for _, row := range rows {
		out = append(out, BuildingFromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateBuilding(ctx context.Context, dto *BuildingDTO) (*Building, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	community, err := s.repo.GetCommunity(ctx, dto.CommunityID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load community", err)
	}
	if community == nil {
		return nil, validation.FieldError("community_id", "community not found", errors.ErrCodeRecordNotFound)
	}

	row := &locationDatamodel.Building{Name: dto.Name, CommunityID: community.ID, Community: community}
	if err := s.repo.CreateBuilding(ctx, row); err != nil {
		s.logger.Error("failed to create building", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to create building", err)
	}
	s.logger.Info("building created", "building_id", row.ID, "name", row.Name)
	return BuildingFromDataModel(row), nil
}

// DeleteBuilding refuses to remove a building that still has rooms.
func (s *Service) DeleteBuilding(ctx context.Context, id int64) error {
	row, err := s.repo.GetBuilding(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to load building", err)
	}
	if row == nil {
		return errors.NewNotFoundError("building not found", errors.ErrCodeRecordNotFound)
	}

	n, err := s.repo.CountRooms(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to count rooms", err)
	}
	if n > 0 {
		return errors.NewConflictError("building still has rooms", errors.ErrCodeInUse)
	}

	if err := s.repo.DeleteBuilding(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete building", err)
	}
	s.logger.Info("building deleted", "building_id", id)
	return nil
}

func (s *Service) ListRooms(ctx context.Context, p transport.ListParams, filter RoomFilter) (RoomPage, error) {
	rows, total, filtered, err := s.repo.ListRooms(ctx, p, filter)
	if err != nil {
		s.logger.Error("failed to list rooms", "error", err)
		return RoomPage{}, errors.NewInternalError("failed to list rooms", err)
	}
	return transport.NewPage(rows, total, filtered, p, RoomFromDataModel), nil
}

func (s *Service) GetBuilding(ctx context.Context, id int64) (*Building, error) {
	row, err := s.building(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildingFromDataModel(row), nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*Room, error) {
	row, err := s.room(ctx, id)
	if err != nil {
		return nil, err
	}
	return RoomFromDataModel(row), nil
}

func (s *Service) CreateRoom(ctx context.Context, dto *RoomDTO) (*Room, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	building, err := s.building(ctx, dto.BuildingID)
	if err != nil {
		return nil, err
	}

	row := &locationDatamodel.Room{Name: dto.Name, BuildingID: building.ID}
	if err := s.repo.CreateRoom(ctx, row); err != nil {
		s.logger.Error("failed to create room", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to create room", err)
	}
	row.Building = building
	s.logger.Info("room created", "room_id", row.ID, "name", row.Name)
	return RoomFromDataModel(row), nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, dto *RoomDTO) (*Room, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.room(ctx, id)
	if err != nil {
		return nil, err
	}
	building, err := s.building(ctx, dto.BuildingID)
	if err != nil {
		return nil, err
	}

	row.Name = dto.Name
	row.BuildingID = building.ID
	row.Building = building
	if err := s.repo.UpdateRoom(ctx, row); err != nil {
		s.logger.Error("failed to update room", "room_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update room", err)
	}
	return RoomFromDataModel(row), nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.room(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete room", err)
	}
	s.logger.Info("room deleted", "room_id", id)
	return nil
}

func (s *Service) room(ctx context.Context, id int64) (*locationDatamodel.Room, error) {
	row, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load room", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("room not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}

func (s *Service) building(ctx context.Context, id int64) (*locationDatamodel.Building, error) {
	row, err := s.repo.GetBuilding(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load building", err)
	}
	if row == nil {
		return nil, validation.FieldError("building_id", "building not found", errors.ErrCodeRecordNotFound)
	}
	return row, nil
}
