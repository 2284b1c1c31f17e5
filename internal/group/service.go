package group

import (
	"context"
	stdErrors "errors"
	"log/slog"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	"github.com/rowalls/uh-internal-project/internal/directory"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*directoryDatamodel.Group, error)
	GetByID(ctx context.Context, id int64) (*directoryDatamodel.Group, error)
	GetByDN(ctx context.Context, dn string) (*directoryDatamodel.Group, error)
	Create(ctx context.Context, group *directoryDatamodel.Group) error
	Delete(ctx context.Context, id int64) error
}

// TreeExpander walks a group tree in the directory.
type TreeExpander interface {
	GroupMembers(ctx context.Context, groupDN string) ([]directory.Member, error)
}

type Service struct {
	repo      RepositoryAPI
	directory TreeExpander
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, dir TreeExpander, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: dir,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Group, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list directory groups", "error", err)
		return nil, errors.NewInternalError("failed to list directory groups", err)
	}

	groups := make([]*Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, FromDataModel(row))
	}
	return groups, nil
}

// Create mirrors a group after confirming the directory knows it. A directory
// that cannot answer is reported as an external failure, not as a bad DN.
func (s *Service) Create(ctx context.Context, dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByDN(ctx, dto.DistinguishedName)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up directory group", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("directory group already exists", errors.ErrCodeDuplicateRecord)
	}

	if _, err := s.directory.GroupMembers(ctx, dto.DistinguishedName); err != nil {
		if stdErrors.Is(err, directory.ErrGroupNotFound) {
			return nil, validation.FieldError("distinguished_name", "group does not exist in the directory", errors.ErrCodeGroupNotFound)
		}
		s.logger.Error("directory lookup failed while creating group", "dn", dto.DistinguishedName, "error", err)
		return nil, errors.NewExternalError("directory is unavailable", errors.ErrCodeDirectoryUnavailable, err)
	}

	row := &directoryDatamodel.Group{
		DistinguishedName: dto.DistinguishedName,
		DisplayName:       dto.DisplayName,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create directory group", "dn", dto.DistinguishedName, "error", err)
		return nil, errors.NewInternalError("failed to create directory group", err)
	}

	s.logger.Info("directory group mirrored", "id", row.ID, "dn", row.DistinguishedName)
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete directory group", "id", id, "error", err)
		return errors.NewInternalError("failed to delete directory group", err)
	}
	s.logger.Info("directory group deleted", "id", id)
	return nil
}

// Members expands the group tree in the directory.
func (s *Service) Members(ctx context.Context, id int64) (*Group, []Member, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.directory.GroupMembers(ctx, g.DistinguishedName)
	if err != nil {
		if stdErrors.Is(err, directory.ErrGroupNotFound) {
			return nil, nil, errors.NewNotFoundError("group no longer exists in the directory", errors.ErrCodeGroupNotFound)
		}
		return nil, nil, errors.NewExternalError("directory is unavailable", errors.ErrCodeDirectoryUnavailable, err)
	}

	members := make([]Member, 0, len(entries))
	for _, e := range entries {
		members = append(members, Member{Username: e.Username, DisplayName: e.DisplayName})
	}
	return g, members, nil
}

// Mirrored returns the local groups among dns, matching DNs case- and
// spacing-insensitively.
func (s *Service) Mirrored(ctx context.Context, dns []string) ([]*Group, error) {
	if len(dns) == 0 {
		return nil, nil
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*Group
	for _, row := range rows {
		for _, dn := range dns {
			if directory.SameDN(row.DistinguishedName, dn) {
				matched = append(matched, FromDataModel(row))
				break
			}
		}
	}
	return matched, nil
}

func (s *Service) get(ctx context.Context, id int64) (*Group, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load directory group", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("directory group not found", errors.ErrCodeGroupNotFound)
	}
	return FromDataModel(row), nil
}
