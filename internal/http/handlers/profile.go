package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// ProfileHandler serves the caller's own profile; there is no way to address
// another user's.
type ProfileHandler struct {
	store storage.ProfileStore
}

func NewProfileHandler(store storage.ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) Register(rt Router) {
	rt.Private("GET /profile/{$}", h.handleGet)
	rt.Private("PUT /profile/{$}", h.handleUpdate(false))
	rt.Private("PATCH /profile/{$}", h.handleUpdate(true))
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.GetProfile(r.Context(), caller(r).ID)
	if err != nil {
		storeError(w, r, "get profile", err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleUpdate(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !partial {
			errs := models.ValidationErrors{}
			if req.Currency == nil {
				errs.Add("currency", "this field is required")
			}
			if req.BudgetLimitNotification == nil {
				errs.Add("budget_limit_notification", "this field is required")
			}
			if errs.Err() != nil {
				respond.Validation(w, errs)
				return
			}
		}

		profile, err := h.store.GetProfile(r.Context(), caller(r).ID)
		if err != nil {
			storeError(w, r, "get profile", err)
			return
		}
		if req.Currency != nil {
			profile.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
		}
		if req.BudgetLimitNotification != nil {
			profile.BudgetLimitNotification = *req.BudgetLimitNotification
		}
		if err := profile.Validate(); err != nil {
			storeError(w, r, "validate profile", err)
			return
		}
		updated, err := h.store.UpdateProfile(r.Context(), profile)
		if err != nil {
			storeError(w, r, "update profile", err)
			return
		}
		respond.JSON(w, http.StatusOK, updated)
	}
}
