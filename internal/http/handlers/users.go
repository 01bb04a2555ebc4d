package handlers

import (
	"net/http"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/middleware"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// UserHandler exposes staff-only user administration.
type UserHandler struct {
	store storage.UserStore
}

func NewUserHandler(store storage.UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) Register(rt Router) {
	rt.Private("GET /users/{$}", h.handleList, middleware.RequireStaff)
	rt.Private("GET /users/{id}/{$}", h.handleGet, middleware.RequireStaff)
	rt.Private("DELETE /users/{id}/{$}", h.handleDelete, middleware.RequireStaff)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		storeError(w, r, "list users", err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		storeError(w, r, "get user", err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// handleDelete removes a user and, through cascades, everything it owns.
func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		storeError(w, r, "delete user", err)
		return
	}
	applog.FromContext(r.Context()).Info("user deleted", "deleted_user_id", id)
	respond.NoContent(w)
}
