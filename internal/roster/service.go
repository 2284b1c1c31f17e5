package roster

import (
	"context"
	"log/slog"
	"sort"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	rosterDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/roster"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/rms"
)

type RepositoryAPI interface {
	ListMappings(ctx context.Context) ([]*rosterDatamodel.CSDMapping, error)
	GetMapping(ctx context.Context, id int64) (*rosterDatamodel.CSDMapping, error)
	GetMappingByDomain(ctx context.Context, domain string) (*rosterDatamodel.CSDMapping, error)
	MappingsByEmail(ctx context.Context, email string) ([]*rosterDatamodel.CSDMapping, error)
	CreateMapping(ctx context.Context, m *rosterDatamodel.CSDMapping, buildingIDs []int64) error
	UpdateMapping(ctx context.Context, m *rosterDatamodel.CSDMapping, buildingIDs []int64) error
	DeleteMapping(ctx context.Context, id int64) error
	GroupExists(ctx context.Context, id int64) (bool, error)
}

type BuildingLookup interface {
	GetBuilding(ctx context.Context, id int64) (*location.Building, error)
}

// ResidentSource reads current room assignments from the records system.
type ResidentSource interface {
	Residents(ctx context.Context, community, building string) ([]rms.Resident, error)
}

type Service struct {
	repo      RepositoryAPI
	buildings BuildingLookup
	residents ResidentSource
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, buildings BuildingLookup, residents ResidentSource, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		buildings: buildings,
		residents: residents,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) ListMappings(ctx context.Context) ([]*Mapping, error) {
	rows, err := s.repo.ListMappings(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list csd mappings", err)
	}
	out := make([]*Mapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, MappingFromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateMapping(ctx context.Context, dto *MappingDTO) (*Mapping, error) {
	if err := s.checkMapping(ctx, 0, dto); err != nil {
		return nil, err
	}
	row := &rosterDatamodel.CSDMapping{
		Name:             dto.Name,
		Email:            dto.Email,
		Domain:           dto.Domain,
		DirectoryGroupID: dto.DirectoryGroupID,
	}
	if err := s.repo.CreateMapping(ctx, row, dto.BuildingIDs); err != nil {
		s.logger.Error("failed to create csd mapping", "domain", dto.Domain, "error", err)
		return nil, errors.NewInternalError("failed to create csd mapping", err)
	}
	s.logger.Info("csd mapping created", "mapping_id", row.ID, "domain", row.Domain, "buildings", len(dto.BuildingIDs))
	return s.reload(ctx, row.ID)
}

// UpdateMapping reassigns a domain to another coordinator and replaces its
// buildings.
func (s *Service) UpdateMapping(ctx context.Context, id int64, dto *MappingDTO) (*Mapping, error) {
	row, err := s.mapping(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMapping(ctx, id, dto); err != nil {
		return nil, err
	}
	row.Name = dto.Name
	row.Email = dto.Email
	row.Domain = dto.Domain
	row.DirectoryGroupID = dto.DirectoryGroupID
	if err := s.repo.UpdateMapping(ctx, row, dto.BuildingIDs); err != nil {
		s.logger.Error("failed to update csd mapping", "mapping_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update csd mapping", err)
	}
	s.logger.Info("csd mapping updated", "mapping_id", id, "domain", row.Domain, "email", row.Email)
	return s.reload(ctx, id)
}

func (s *Service) DeleteMapping(ctx context.Context, id int64) error {
	if _, err := s.mapping(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMapping(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete csd mapping", err)
	}
	s.logger.Info("csd mapping deleted", "mapping_id", id)
	return nil
}

// DefaultBuildings returns the buildings of every domain mapped to the user's
// email, which the roster form starts with selected.
func (s *Service) DefaultBuildings(ctx context.Context, u *coreuser.User) ([]int64, error) {
	if u.Email == "" {
		return []int64{}, nil
	}
	rows, err := s.repo.MappingsByEmail(ctx, u.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to load csd mappings", err)
	}
	var ids []int64
	for _, row := range rows {
		for _, b := range row.Buildings {
			ids = append(ids, b.ID)
		}
	}
	return uniqueIDs(ids), nil
}

// Generate reads the residents of each selected building. A building the
// records system fails for is kept with an unknown count instead of failing
// the whole roster.
func (s *Service) Generate(ctx context.Context, dto *GenerateDTO) (*Roster, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	out := &Roster{Buildings: make([]BuildingRoster, 0, len(dto.BuildingIDs)), GeneratedAt: s.now().UTC()}
	for _, id := range dto.BuildingIDs {
		b, err := s.building(ctx, id)
		if err != nil {
			return nil, err
		}

		rows, err := s.residents.Residents(ctx, b.CommunityName, b.Name)
		if err != nil {
			s.logger.Warn("roster building unavailable", "building_id", id, "building", b.Name, "error", err)
			out.Buildings = append(out.Buildings, unavailableBuilding(b.ID, b.Name, b.CommunityName))
			continue
		}

		residents := make([]Resident, 0, len(rows))
		for _, r := range rows {
			residents = append(residents, Resident{FullName: r.FullName, Alias: r.Alias, Email: r.Email, Room: r.Room})
		}
		sort.SliceStable(residents, func(i, j int) bool {
			if residents[i].Room != residents[j].Room {
				return residents[i].Room < residents[j].Room
			}
			return residents[i].FullName < residents[j].FullName
		})
		out.Buildings = append(out.Buildings, newBuildingRoster(b.ID, b.Name, b.CommunityName, residents))
	}

	s.logger.Info("roster generated", "buildings", len(out.Buildings), "complete", out.Complete())
	return out, nil
}

func (s *Service) checkMapping(ctx context.Context, selfID int64, dto *MappingDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetMappingByDomain(ctx, dto.Domain)
	if err != nil {
		return errors.NewInternalError("failed to check domain", err)
	}
	if existing != nil && existing.ID != selfID {
		return errors.NewConflictError("domain is already mapped", errors.ErrCodeDuplicateRecord)
	}

	ok, err := s.repo.GroupExists(ctx, dto.DirectoryGroupID)
	if err != nil {
		return errors.NewInternalError("failed to check directory group", err)
	}
	if !ok {
		return validation.FieldError("directory_group_id", "directory group not found", errors.ErrCodeGroupNotFound)
	}

	for _, id := range dto.BuildingIDs {
		if _, err := s.building(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// building turns a missing building into a field error on building_ids.
func (s *Service) building(ctx context.Context, id int64) (*location.Building, error) {
	b, err := s.buildings.GetBuilding(ctx, id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeNotFound {
			return nil, validation.FieldError("building_ids", "building not found", errors.ErrCodeRecordNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) mapping(ctx context.Context, id int64) (*rosterDatamodel.CSDMapping, error) {
	row, err := s.repo.GetMapping(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load csd mapping", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("csd mapping not found", errors.ErrCodeMappingNotFound)
	}
	return row, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*Mapping, error) {
	row, err := s.mapping(ctx, id)
	if err != nil {
		return nil, err
	}
	return MappingFromDataModel(row), nil
}
