package permission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/cache"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
)

const DefaultTTL = 4 * time.Hour

type RepositoryAPI interface {
	List(ctx context.Context) ([]*permissionDatamodel.Class, error)
	GetByID(ctx context.Context, id int64) (*permissionDatamodel.Class, error)
	GetByName(ctx context.Context, name string) (*permissionDatamodel.Class, error)
	Create(ctx context.Context, class *permissionDatamodel.Class) error
	AddGroup(ctx context.Context, classID, groupID int64) error
	RemoveGroup(ctx context.Context, classID, groupID int64) error
	GroupExists(ctx context.Context, groupID int64) (bool, error)
}

// MembershipStore answers whether any of the user's groups belongs to the
// named class. An unknown class is simply not a match.
type MembershipStore interface {
	UserInClass(ctx context.Context, username, class string) (bool, error)
}

type Service struct {
	repo       RepositoryAPI
	membership MembershipStore
	cache      cache.Cache
	ttl        time.Duration
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, membership MembershipStore, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:       repo,
		membership: membership,
		cache:      c,
		ttl:        ttl,
		logger:     logger,
	}
}

func CacheKey(username, class string) string {
	return "has_access:" + username + ":" + class
}

// HasAccess reports whether the user holds the permission class. Results are
// cached for the configured ttl and may lag behind membership changes until
// they expire. A membership store failure is returned, never folded into a
// grant or a denial.
func (s *Service) HasAccess(ctx context.Context, username, class string) (bool, error) {
	key := CacheKey(username, class)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("permission cache read failed", "key", key, "error", err)
	} else if ok {
		return string(raw) == "1", nil
	}

	granted, err := s.membership.UserInClass(ctx, username, class)
	if err != nil {
		s.logger.Error("permission membership lookup failed", "username", username, "class", class, "error", err)
		return false, fmt.Errorf("check %s access for %s: %w", class, username, err)
	}

	value := []byte("0")
	if granted {
		value = []byte("1")
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("permission cache write failed", "key", key, "error", err)
	}

	return granted, nil
}

// HasAny is true when the user holds at least one of the classes. The first
// lookup error stops the scan.
func (s *Service) HasAny(ctx context.Context, username string, classes []string) (bool, error) {
	for _, class := range classes {
		ok, err := s.HasAccess(ctx, username, class)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) ListClasses(ctx context.Context) ([]*Class, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list permission classes", "error", err)
		return nil, errors.NewInternalError("failed to list permission classes", err)
	}

	classes := make([]*Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, FromDataModel(row))
	}
	return classes, nil
}

func (s *Service) CreateClass(ctx context.Context, dto CreateClassDTO) (*Class, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up permission class", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("permission class already exists", errors.ErrCodeDuplicateRecord)
	}

	row := &permissionDatamodel.Class{Name: dto.Name}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create permission class", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to create permission class", err)
	}

	s.logger.Info("permission class created", "id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

// GrantGroup adds a directory group to a class. Cached answers for members of
// that group keep their old value until they expire.
func (s *Service) GrantGroup(ctx context.Context, classID int64, dto GrantGroupDTO) (*Class, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.getClass(ctx, classID); err != nil {
		return nil, err
	}

	exists, err := s.repo.GroupExists(ctx, dto.GroupID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up directory group", err)
	}
	if !exists {
		return nil, errors.NewNotFoundError("directory group not found", errors.ErrCodeGroupNotFound)
	}

	if err := s.repo.AddGroup(ctx, classID, dto.GroupID); err != nil {
		s.logger.Error("failed to grant group", "class_id", classID, "group_id", dto.GroupID, "error", err)
		return nil, errors.NewInternalError("failed to grant group", err)
	}

	s.logger.Info("group granted permission class", "class_id", classID, "group_id", dto.GroupID)
	return s.getClass(ctx, classID)
}

func (s *Service) RevokeGroup(ctx context.Context, classID, groupID int64) (*Class, error) {
	if _, err := s.getClass(ctx, classID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveGroup(ctx, classID, groupID); err != nil {
		s.logger.Error("failed to revoke group", "class_id", classID, "group_id", groupID, "error", err)
		return nil, errors.NewInternalError("failed to revoke group", err)
	}

	s.logger.Info("group revoked from permission class", "class_id", classID, "group_id", groupID)
	return s.getClass(ctx, classID)
}

func (s *Service) getClass(ctx context.Context, id int64) (*Class, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load permission class", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("permission class not found", errors.ErrCodePermissionClassNotFound)
	}
	return FromDataModel(row), nil
}
