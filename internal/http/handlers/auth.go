package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// AuthStore is the persistence the auth endpoints need.
type AuthStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	storage.TokenStore
}

// AuthHandler owns register/login/logout.
type AuthHandler struct {
	store  AuthStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store AuthStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches auth routes.
func (h *AuthHandler) Register(rt Router) {
	rt.Public("POST /auth/register/{$}", h.handleRegister)
	rt.Public("POST /auth/login/{$}", h.handleLogin)
	rt.Private("POST /auth/logout/{$}", h.handleLogout)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := models.ValidateRegistration(req.Username, req.Email, req.Password); err != nil {
		storeError(w, r, "register", err)
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Role:         models.RoleMember,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Validation(w, models.ValidationErrors{"username": "a user with that username already exists"})
			return
		}
		storeError(w, r, "create user", err)
		return
	}
	applog.FromContext(r.Context()).Info("user registered", applog.FieldUserID, created.ID)
	respond.JSON(w, http.StatusCreated, created)
}

// handleLogin returns the caller's existing token when it still verifies and
// issues a new one otherwise. Failures never reveal which field was wrong.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	// An unreadable body counts as missing credentials.
	var req dto.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		req = dto.LoginRequest{}
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		respond.Error(w, http.StatusUnauthorized, "username and password required")
		return
	}
	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Unknown usernames still pay for one bcrypt comparison.
			auth.CheckPassword(dummyHash, req.Password)
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		storeError(w, r, "find user", err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokenFor(r.Context(), user)
	if err != nil {
		storeError(w, r, "issue token", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) tokenFor(ctx context.Context, user models.User) (string, error) {
	existing, err := h.store.TokenForUser(ctx, user.ID)
	switch {
	case err == nil:
		if _, perr := h.tokens.Parse(existing); perr == nil {
			return existing, nil
		}
	case !errors.Is(err, storage.ErrNotFound):
		return "", err
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		return "", err
	}
	if err := h.store.SaveToken(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteToken(r.Context(), caller(r).ID); err != nil {
		storeError(w, r, "delete token", err)
		return
	}
	respond.NoContent(w)
}

// dummyHash is compared against when the username is unknown.
var dummyHash, _ = auth.HashPassword("finance-tracker-unknown-user")
