package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// CredentialStore is what bearer authentication needs from persistence.
type CredentialStore interface {
	TokenForUser(ctx context.Context, userID int64) (string, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}

// Authenticator resolves the bearer token on a request to a user.
type Authenticator struct {
	tokens *auth.TokenManager
	store  CredentialStore
}

// NewAuthenticator constructs the middleware.
func NewAuthenticator(tokens *auth.TokenManager, store CredentialStore) *Authenticator {
	return &Authenticator{tokens: tokens, store: store}
}

// Require rejects requests without a valid bearer token with 401 and puts the
// caller on the request context otherwise.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}
		user, err := a.authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, storage.ErrNotFound) {
				applog.FromContext(r.Context()).Error("authenticate request", applog.FieldError, err)
				respond.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := auth.WithUser(r.Context(), user)
		ctx = applog.IntoContext(ctx, applog.FromContext(ctx).With(applog.FieldUserID, user.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) authenticate(ctx context.Context, token string) (models.User, error) {
	userID, err := a.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	stored, err := a.store.TokenForUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return models.User{}, auth.ErrInvalidToken
	}
	return a.store.FindByID(ctx, userID)
}

// RequireStaff must run after Require; non-staff callers get 403.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}
		if !user.IsStaff() {
			respond.Error(w, http.StatusForbidden, "you do not have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken reads "Authorization: Bearer <t>" or the "Token <t>" scheme.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(strings.TrimSpace(r.Header.Get("Authorization")), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
