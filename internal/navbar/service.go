package navbar

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/cache"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
)

const DefaultTTL = 4 * time.Hour

type RepositoryAPI interface {
	List(ctx context.Context) ([]*navbarDatamodel.Link, error)
	GetByID(ctx context.Context, id int64) (*navbarDatamodel.Link, error)
	Create(ctx context.Context, link *navbarDatamodel.Link, classIDs []int64) error
	Update(ctx context.Context, link *navbarDatamodel.Link, classIDs []int64) error
	Delete(ctx context.Context, id int64) error
	HasChildren(ctx context.Context, id int64) (bool, error)
	CountClasses(ctx context.Context, ids []int64) (int64, error)
}

type AccessChecker interface {
	HasAny(ctx context.Context, username string, classes []string) (bool, error)
}

type Options struct {
	TTL         time.Duration
	DepthPolicy DepthPolicy
	StaticURL   string
}

// Navbar is the per-user navigation: the rendered fragment and the tree it
// was rendered from.
type Navbar struct {
	HTML  string  `json:"html"`
	Links []*Node `json:"links"`
}

type Service struct {
	repo    RepositoryAPI
	access  AccessChecker
	cache   cache.Cache
	routes  RouteResolver
	builder *Builder
	ttl     time.Duration
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, access AccessChecker, c cache.Cache, routes RouteResolver, opts Options, logger *slog.Logger) *Service {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.DepthPolicy == "" {
		opts.DepthPolicy = DepthFlatten
	}
	return &Service{
		repo:    repo,
		access:  access,
		cache:   c,
		routes:  routes,
		builder: NewBuilder(routes, opts.DepthPolicy, opts.StaticURL, logger),
		ttl:     opts.TTL,
		logger:  logger,
	}
}

func CacheKey(username string) string {
	return username + ":navbar"
}

// Render returns the user's navigation. A cached result is returned as is
// until it expires; link changes do not invalidate it.
func (s *Service) Render(ctx context.Context, u *coreuser.User) (*Navbar, error) {
	key := CacheKey(u.Username)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("navbar cache read failed", "key", key, "error", err)
	} else if ok {
		var cached Navbar
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable navbar cache entry", "key", key)
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load navbar links", "error", err)
		return nil, errors.NewInternalError("failed to load navbar links", err)
	}

	links := make([]*Link, 0, len(rows))
	for _, row := range rows {
		links = append(links, FromDataModel(row))
	}

	authorized, complete := s.authorize(ctx, u, links)
	nodes := s.builder.Build(links, func(l *Link) bool { return authorized[l.ID] })

	html, err := Render(nodes)
	if err != nil {
		s.logger.Error("failed to render navbar", "username", u.Username, "error", err)
		return nil, errors.NewInternalError("failed to render navbar", err)
	}
	nav := &Navbar{HTML: string(html), Links: nodes}

	// a navbar built while permission checks were failing is not cached
	if complete {
		s.store(ctx, key, nav)
	}
	return nav, nil
}

// authorize evaluates every link for the user. A failed permission check
// hides the link and reports the result as incomplete.
func (s *Service) authorize(ctx context.Context, u *coreuser.User, links []*Link) (map[int64]bool, bool) {
	authorized := make(map[int64]bool, len(links))
	complete := true
	for _, l := range links {
		if l.ShowToAll {
			authorized[l.ID] = true
			continue
		}
		if len(l.PermissionClasses) == 0 {
			continue
		}
		ok, err := s.access.HasAny(ctx, u.Username, l.PermissionClasses)
		if err != nil {
			s.logger.Warn("navbar permission check failed, hiding link", "link_id", l.ID, "username", u.Username, "error", err)
			complete = false
			continue
		}
		authorized[l.ID] = ok
	}
	return authorized, complete
}

func (s *Service) store(ctx context.Context, key string, nav *Navbar) {
	raw, err := json.Marshal(nav)
	if err != nil {
		s.logger.Warn("failed to encode navbar for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("navbar cache write failed", "key", key, "error", err)
	}
}

func (s *Service) ListLinks(ctx context.Context) ([]*Link, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list navbar links", "error", err)
		return nil, errors.NewInternalError("failed to list navbar links", err)
	}
	links := make([]*Link, 0, len(rows))
	for _, row := range rows {
		links = append(links, FromDataModel(row))
	}
	sortLinks(links)
	return links, nil
}

func (s *Service) CreateLink(ctx context.Context, dto LinkDTO) (*Link, error) {
	if err := s.validate(ctx, &dto, 0); err != nil {
		return nil, err
	}

	row := dtoToRow(dto)
	if err := s.repo.Create(ctx, row, dto.PermissionClassIDs); err != nil {
		s.logger.Error("failed to create navbar link", "display_name", dto.DisplayName, "error", err)
		return nil, errors.NewInternalError("failed to create navbar link", err)
	}

	s.logger.Info("navbar link created", "id", row.ID, "display_name", row.DisplayName)
	return s.getLink(ctx, row.ID)
}

func (s *Service) UpdateLink(ctx context.Context, id int64, dto LinkDTO) (*Link, error) {
	existing, err := s.getLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &dto, id); err != nil {
		return nil, err
	}

	row := dtoToRow(dto)
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, row, dto.PermissionClassIDs); err != nil {
		s.logger.Error("failed to update navbar link", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to update navbar link", err)
	}

	s.logger.Info("navbar link updated", "id", id)
	return s.getLink(ctx, id)
}

// DeleteLink removes the link and its children.
func (s *Service) DeleteLink(ctx context.Context, id int64) error {
	if _, err := s.getLink(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete navbar link", "id", id, "error", err)
		return errors.NewInternalError("failed to delete navbar link", err)
	}
	s.logger.Info("navbar link deleted", "id", id)
	return nil
}

// validate enforces the write-time rules: the route resolves, the parent is
// top level, and a link that has children is never nested.
func (s *Service) validate(ctx context.Context, dto *LinkDTO, selfID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if dto.RouteName != nil {
		if _, err := s.routes.Resolve(*dto.RouteName); err != nil {
			return validation.FieldError("route_name", "route name could not be resolved", errors.ErrCodeInvalidRoute)
		}
	}

	if dto.ParentID != nil {
		if *dto.ParentID == selfID {
			return validation.FieldError("parent_id", "a link cannot be its own parent", errors.ErrCodeInvalidParent)
		}
		parent, err := s.repo.GetByID(ctx, *dto.ParentID)
		if err != nil {
			return errors.NewInternalError("failed to load parent link", err)
		}
		if parent == nil {
			return validation.FieldError("parent_id", "parent link does not exist", errors.ErrCodeInvalidParent)
		}
		if parent.ParentID != nil {
			return validation.FieldError("parent_id", "parent link must be a top-level link", errors.ErrCodeInvalidParent)
		}
		if selfID != 0 {
			hasChildren, err := s.repo.HasChildren(ctx, selfID)
			if err != nil {
				return errors.NewInternalError("failed to check child links", err)
			}
			if hasChildren {
				return validation.FieldError("parent_id", "a link with children cannot be nested", errors.ErrCodeInvalidParent)
			}
		}
	}

	if ids := uniqueIDs(dto.PermissionClassIDs); len(ids) > 0 {
		count, err := s.repo.CountClasses(ctx, ids)
		if err != nil {
			return errors.NewInternalError("failed to check permission classes", err)
		}
		if count != int64(len(ids)) {
			return validation.FieldError("permission_class_ids", "unknown permission class", errors.ErrCodePermissionClassNotFound)
		}
		dto.PermissionClassIDs = ids
	}
	return nil
}

func (s *Service) getLink(ctx context.Context, id int64) (*Link, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load navbar link", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("navbar link not found", errors.ErrCodeLinkNotFound)
	}
	return FromDataModel(row), nil
}

func dtoToRow(dto LinkDTO) *navbarDatamodel.Link {
	return &navbarDatamodel.Link{
		DisplayName:   dto.DisplayName,
		ParentID:      dto.ParentID,
		SequenceIndex: dto.SequenceIndex,
		RouteName:     dto.RouteName,
		ExternalURL:   dto.ExternalURL,
		Onclick:       dto.Onclick,
		Icon:          dto.Icon,
		ShowToAll:     dto.ShowToAll,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
