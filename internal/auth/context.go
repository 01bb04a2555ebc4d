package auth

import (
	"context"

	"github.com/hongminglow/finance-tracker-be/internal/models"
)

type userKey struct{}

// WithUser attaches the authenticated caller to ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the authenticated caller, if any.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
