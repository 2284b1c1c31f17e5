package internal

import (
	"context"

	"github.com/rowalls/uh-internal-project/internal/core/user"
)

type userKey struct{}

// UserFromContext returns the authenticated user placed there by the auth middleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(userKey{}).(*user.User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}
