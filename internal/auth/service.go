package auth

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/directory"
)

// Authenticator verifies credentials against the directory.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*directory.Entry, error)
}

// UserProvisioner keeps the local account in step with the directory.
type UserProvisioner interface {
	GetByUsername(ctx context.Context, username string) (*coreuser.User, error)
	UpsertFromDirectory(ctx context.Context, entry *directory.Entry) (*coreuser.User, error)
	SyncGroups(ctx context.Context, u *coreuser.User) (*coreuser.User, error)
}

type Service struct {
	directory Authenticator
	users     UserProvisioner
	tokens    TokenGenerator
	logger    *slog.Logger
}

func NewService(dir Authenticator, users UserProvisioner, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		directory: dir,
		users:     users,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login binds as the user, refreshes the local account and its mirrored
// groups, and issues a token pair.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	entry, err := s.directory.Authenticate(ctx, dto.Username, dto.Password)
	if err != nil {
		if stdErrors.Is(err, directory.ErrInvalidCredentials) || stdErrors.Is(err, directory.ErrUserNotFound) {
			s.logger.Warn("login rejected", "username", dto.Username)
			return AuthTokens{}, errors.ErrInvalidCredentials
		}
		s.logger.Error("directory bind failed", "username", dto.Username, "error", err)
		return AuthTokens{}, errors.NewExternalError("directory is unavailable", errors.ErrCodeDirectoryUnavailable, err)
	}

	u, err := s.users.UpsertFromDirectory(ctx, entry)
	if err != nil {
		return AuthTokens{}, err
	}
	if _, err := s.users.SyncGroups(ctx, u); err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("user logged in", "username", u.Username)
	return s.issue(u.Username)
}

// Refresh exchanges a refresh token for a new pair, provided the account is
// still active.
func (s *Service) Refresh(ctx context.Context, dto RefreshTokenDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	claims, err := s.tokens.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		return AuthTokens{}, tokenError(err)
	}

	u, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUserNotFound {
			return AuthTokens{}, errors.ErrInvalidToken
		}
		return AuthTokens{}, err
	}
	if !u.IsActive {
		return AuthTokens{}, errors.ErrUserInactive
	}

	return s.issue(u.Username)
}

// Authenticate resolves an access token to the active local user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*coreuser.User, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err)
	}

	u, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUserNotFound {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, errors.ErrUserInactive
	}
	return u, nil
}

func (s *Service) issue(username string) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(username)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to issue access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(username)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to issue refresh token", err)
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL() / time.Second),
	}, nil
}

func tokenError(err error) error {
	if stdErrors.Is(err, ErrTokenExpired) {
		return errors.ErrTokenExpired
	}
	return errors.ErrInvalidToken
}
