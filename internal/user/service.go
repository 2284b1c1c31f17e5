package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	userDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
	"github.com/rowalls/uh-internal-project/internal/directory"
	"github.com/rowalls/uh-internal-project/internal/group"
)

type RepositoryAPI interface {
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	Save(ctx context.Context, u *userDatamodel.User) error
	ReplaceGroups(ctx context.Context, userID int64, groupIDs []int64) error
}

// GroupLookup lists the directory groups of an account, nested ones included.
type GroupLookup interface {
	UserGroups(ctx context.Context, username string) ([]string, error)
}

// GroupMatcher narrows directory DNs to the locally mirrored groups.
type GroupMatcher interface {
	Mirrored(ctx context.Context, dns []string) ([]*group.Group, error)
}

type AccessChecker interface {
	HasAccess(ctx context.Context, username, class string) (bool, error)
}

type Service struct {
	repo            RepositoryAPI
	directory       GroupLookup
	groups          GroupMatcher
	access          AccessChecker
	onboardingClass string
	logger          *slog.Logger
	now             func() time.Time
}

func NewService(repo RepositoryAPI, dir GroupLookup, groups GroupMatcher, access AccessChecker, onboardingClass string, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		directory:       dir,
		groups:          groups,
		access:          access,
		onboardingClass: onboardingClass,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByUsername loads the principal with its mirrored groups.
func (s *Service) GetByUsername(ctx context.Context, username string) (*coreuser.User, error) {
	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to load user", "username", username, "error", err)
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}
	return FromDataModel(row), nil
}

// UpsertFromDirectory records a successful login, creating the local account
// on first sight and refreshing names and email from the directory.
func (s *Service) UpsertFromDirectory(ctx context.Context, entry *directory.Entry) (*coreuser.User, error) {
	username := strings.ToLower(entry.Username)

	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		row = &userDatamodel.User{Username: username, IsActive: true}
	}
	if !row.IsActive {
		return nil, errors.ErrUserInactive
	}

	row.FirstName = entry.FirstName
	row.LastName = entry.LastName
	row.Email = entry.Email
	now := s.now()
	row.LastLogin = &now

	if err := s.repo.Save(ctx, row); err != nil {
		s.logger.Error("failed to save user", "username", username, "error", err)
		return nil, errors.NewInternalError("failed to save user", err)
	}
	return FromDataModel(row), nil
}

// SyncGroups replaces the user's mirrored groups with the ones the directory
// currently reports. Groups that are not mirrored locally are ignored.
func (s *Service) SyncGroups(ctx context.Context, u *coreuser.User) (*coreuser.User, error) {
	dns, err := s.directory.UserGroups(ctx, u.Username)
	if err != nil {
		s.logger.Error("directory group lookup failed", "username", u.Username, "error", err)
		return nil, errors.NewExternalError("directory is unavailable", errors.ErrCodeDirectoryUnavailable, err)
	}

	matched, err := s.groups.Mirrored(ctx, dns)
	if err != nil {
		return nil, errors.NewInternalError("failed to match directory groups", err)
	}

	ids := make([]int64, 0, len(matched))
	for _, g := range matched {
		ids = append(ids, g.ID)
	}
	if err := s.repo.ReplaceGroups(ctx, u.ID, ids); err != nil {
		s.logger.Error("failed to replace user groups", "username", u.Username, "error", err)
		return nil, errors.NewInternalError("failed to update user groups", err)
	}

	s.logger.Info("user groups synchronised", "username", u.Username, "directory_groups", len(dns), "mirrored", len(ids))
	return s.reload(ctx, u.ID)
}

// Specializations are the display names of the user's groups followed by their
// flair, or the NewTechnician label while onboarding is incomplete.
func (s *Service) Specializations(ctx context.Context, u *coreuser.User) []string {
	if s.onboardingClass != "" && !u.OrientationComplete {
		onboarding, err := s.access.HasAccess(ctx, u.Username, s.onboardingClass)
		if err != nil {
			s.logger.Warn("onboarding class check failed", "username", u.Username, "error", err)
		} else if onboarding {
			return []string{NewTechnician}
		}
	}

	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.DisplayName)
	}
	if u.Flair != "" {
		names = append(names, u.Flair)
	}
	return names
}

func (s *Service) Profile(ctx context.Context, u *coreuser.User) *ProfileResponse {
	return NewProfileResponse(u, s.Specializations(ctx, u))
}

// CompleteOnboardingStep marks a step done. Orientation can only be completed
// after the other three.
func (s *Service) CompleteOnboardingStep(ctx context.Context, u *coreuser.User, step string) (*ProfileResponse, error) {
	row, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}

	switch step {
	case StepOnity:
		row.OnityComplete = true
	case StepSRS:
		row.SRSComplete = true
	case StepPayroll:
		row.PayrollComplete = true
	case StepOrientation:
		if !row.OnityComplete || !row.SRSComplete || !row.PayrollComplete {
			return nil, errors.NewValidationError("onity, srs and payroll must be completed before orientation", errors.ErrCodeOnboardingOrder)
		}
		row.OrientationComplete = true
	default:
		return nil, errors.NewValidationFieldError("step", "unknown onboarding step", errors.ErrCodeValidationFailed)
	}

	if err := s.repo.Save(ctx, row); err != nil {
		s.logger.Error("failed to save onboarding step", "username", u.Username, "step", step, "error", err)
		return nil, errors.NewInternalError("failed to save onboarding step", err)
	}

	s.logger.Info("onboarding step completed", "username", u.Username, "step", step)
	updated := FromDataModel(row)
	return s.Profile(ctx, updated), nil
}

func (s *Service) reload(ctx context.Context, id int64) (*coreuser.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}
	return FromDataModel(row), nil
}
