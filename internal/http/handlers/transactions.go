package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// TransactionStore is what the transaction endpoints need.
type TransactionStore interface {
	storage.TransactionStore
	GetCategory(ctx context.Context, userID, id int64) (models.Category, error)
}

// SaveHook observes transaction writes. previous is nil on create.
type SaveHook interface {
	TransactionSaved(ctx context.Context, tx models.Transaction, previous *models.Transaction) ([]models.Notification, error)
}

// TransactionHandler serves owner-scoped transaction CRUD. The transaction
// date is always assigned here, never read from the request.
type TransactionHandler struct {
	store TransactionStore
	hook  SaveHook
	loc   *time.Location
	now   func() time.Time
}

// NewTransactionHandler builds the handler; hook may be nil. Date filters are
// interpreted as calendar days in loc.
func NewTransactionHandler(store TransactionStore, hook SaveHook, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{store: store, hook: hook, loc: loc, now: time.Now}
}

func (h *TransactionHandler) Register(rt Router) {
	rt.Private("GET /transactions/{$}", h.handleList)
	rt.Private("POST /transactions/{$}", h.handleCreate)
	rt.Private("GET /transactions/{id}/{$}", h.handleGet)
	rt.Private("PUT /transactions/{id}/{$}", h.handleUpdate(false))
	rt.Private("PATCH /transactions/{id}/{$}", h.handleUpdate(true))
	rt.Private("DELETE /transactions/{id}/{$}", h.handleDelete)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		storeError(w, r, "parse filter", err)
		return
	}
	txs, err := h.store.ListTransactions(r.Context(), caller(r).ID, filter)
	if err != nil {
		storeError(w, r, "list transactions", err)
		return
	}
	respond.JSON(w, http.StatusOK, txs)
}

// parseFilter reads category, start_date and end_date. Both dates are whole
// calendar days and both bounds are inclusive.
func (h *TransactionHandler) parseFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	errs := models.ValidationErrors{}
	var f models.TransactionFilter
	if raw := q.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs.Add("category", "category must be an integer id")
		} else {
			f.CategoryID = &id
		}
	}
	if raw := q.Get("start_date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			errs.Add("start_date", "date must be YYYY-MM-DD")
		} else {
			f.From = d.Start(h.loc)
		}
	}
	if raw := q.Get("end_date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			errs.Add("end_date", "date must be YYYY-MM-DD")
		} else {
			f.To = d.Start(h.loc).AddDate(0, 0, 1)
		}
	}
	return f, errs.Err()
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user := caller(r)
	tx := models.Transaction{UserID: user.ID}
	if err := applyTransaction(&tx, req, false); err != nil {
		storeError(w, r, "validate transaction", err)
		return
	}
	if err := h.checkCategory(r.Context(), user.ID, tx.CategoryID); err != nil {
		storeError(w, r, "check category", err)
		return
	}
	tx.Date = h.now().UTC()
	created, err := h.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		storeError(w, r, "create transaction", err)
		return
	}
	h.afterSave(r.Context(), created, nil)
	respond.JSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tx, err := h.store.GetTransaction(r.Context(), caller(r).ID, id)
	if err != nil {
		storeError(w, r, "get transaction", err)
		return
	}
	respond.JSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleUpdate(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req dto.TransactionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		user := caller(r)
		previous, err := h.store.GetTransaction(r.Context(), user.ID, id)
		if err != nil {
			storeError(w, r, "get transaction", err)
			return
		}
		tx := previous
		if err := applyTransaction(&tx, req, partial); err != nil {
			storeError(w, r, "validate transaction", err)
			return
		}
		if err := h.checkCategory(r.Context(), user.ID, tx.CategoryID); err != nil {
			storeError(w, r, "check category", err)
			return
		}
		updated, err := h.store.UpdateTransaction(r.Context(), tx)
		if err != nil {
			storeError(w, r, "update transaction", err)
			return
		}
		h.afterSave(r.Context(), updated, &previous)
		respond.JSON(w, http.StatusOK, updated)
	}
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteTransaction(r.Context(), caller(r).ID, id); err != nil {
		storeError(w, r, "delete transaction", err)
		return
	}
	respond.NoContent(w)
}

// checkCategory turns a category the caller does not own into a field error.
func (h *TransactionHandler) checkCategory(ctx context.Context, userID, categoryID int64) error {
	_, err := h.store.GetCategory(ctx, userID, categoryID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.FieldError("category", "invalid category")
	}
	return err
}

// afterSave runs the hook; its failures are logged and never fail the write.
func (h *TransactionHandler) afterSave(ctx context.Context, tx models.Transaction, previous *models.Transaction) {
	if h.hook == nil {
		return
	}
	if _, err := h.hook.TransactionSaved(ctx, tx, previous); err != nil {
		applog.FromContext(ctx).Warn("transaction save hook failed",
			"transaction_id", tx.ID, applog.FieldError, err)
	}
}

func applyTransaction(tx *models.Transaction, req dto.TransactionRequest, partial bool) error {
	if !partial {
		errs := models.ValidationErrors{}
		if req.Category == nil {
			errs.Add("category", "this field is required")
		}
		if req.Amount == nil {
			errs.Add("amount", "this field is required")
		}
		if err := errs.Err(); err != nil {
			return err
		}
		// Omitted optional fields fall back to their defaults on full writes.
		tx.Description = nil
		tx.IsRecurring = false
		tx.RecurrencePeriod = nil
	}
	if req.Category != nil {
		tx.CategoryID = *req.Category
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Description.Set {
		tx.Description = req.Description.Value
	}
	if req.IsRecurring != nil {
		tx.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePeriod.Set {
		tx.RecurrencePeriod = req.RecurrencePeriod.Value
		if tx.RecurrencePeriod != nil && *tx.RecurrencePeriod == "" {
			tx.RecurrencePeriod = nil
		}
	}
	return tx.Validate()
}
