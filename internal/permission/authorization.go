package permission

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal"
)

type AccessChecker interface {
	HasAccess(ctx context.Context, username, class string) (bool, error)
}

// Authorization gates routes on permission classes. It denies by default:
// a missing user is 401, a missing class or a failed lookup is 403.
type Authorization struct {
	checker AccessChecker
	logger  *slog.Logger
}

func NewAuthorization(checker AccessChecker, logger *slog.Logger) *Authorization {
	return &Authorization{
		checker: checker,
		logger:  logger,
	}
}

func (a *Authorization) Check(next http.HandlerFunc, classes ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			a.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		for _, class := range classes {
			granted, err := a.checker.HasAccess(r.Context(), user.Username, class)
			if err != nil {
				a.logger.ErrorContext(r.Context(), "authorization check failed, denying",
					"error", err,
					"username", user.Username,
					"class", class)
				http.Error(w, "Forbidden: unable to verify permissions", http.StatusForbidden)
				return
			}
			if granted {
				next.ServeHTTP(w, r)
				return
			}
		}

		a.logger.WarnContext(r.Context(), "access denied: missing permission class",
			"username", user.Username,
			"required_classes", classes)
		http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
	}
}

// Require admits the request when the user holds any of the given classes.
func (a *Authorization) Require(classes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.Check(next.ServeHTTP, classes...)
	}
}
