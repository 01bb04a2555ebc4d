package handlers

import (
	"net/http"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// NotificationHandler lists notifications and marks them read. Messages and
// timestamps are never writable through the API.
type NotificationHandler struct {
	store storage.NotificationStore
}

func NewNotificationHandler(store storage.NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) Register(rt Router) {
	rt.Private("GET /notifications/{$}", h.handleList(false))
	rt.Private("GET /notifications/unread/{$}", h.handleList(true))
	rt.Private("POST /notifications/mark-all-read/{$}", h.handleMarkAllRead)
	rt.Private("GET /notifications/{id}/{$}", h.handleGet)
	rt.Private("PATCH /notifications/{id}/{$}", h.handlePatch)
}

func (h *NotificationHandler) handleList(unreadOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.store.ListNotifications(r.Context(), caller(r).ID, unreadOnly)
		if err != nil {
			storeError(w, r, "list notifications", err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

func (h *NotificationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := h.store.GetNotification(r.Context(), caller(r).ID, id)
	if err != nil {
		storeError(w, r, "get notification", err)
		return
	}
	respond.JSON(w, http.StatusOK, n)
}

// handlePatch only moves a notification from unread to read.
func (h *NotificationHandler) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.NotificationPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := caller(r).ID
	n, err := h.store.GetNotification(r.Context(), userID, id)
	if err != nil {
		storeError(w, r, "get notification", err)
		return
	}
	switch {
	case req.IsRead == nil:
		respond.JSON(w, http.StatusOK, n)
		return
	case !*req.IsRead && n.IsRead:
		respond.Validation(w, models.ValidationErrors{"is_read": "a read notification cannot be marked unread"})
		return
	case !*req.IsRead:
		respond.JSON(w, http.StatusOK, n)
		return
	}
	updated, err := h.store.MarkRead(r.Context(), userID, id)
	if err != nil {
		storeError(w, r, "mark notification read", err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *NotificationHandler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.MarkAllRead(r.Context(), caller(r).ID)
	if err != nil {
		storeError(w, r, "mark all read", err)
		return
	}
	applog.FromContext(r.Context()).Info("notifications marked read", "count", count)
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "All notifications marked as read."})
}
