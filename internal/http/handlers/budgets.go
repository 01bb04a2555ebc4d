package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// BudgetStore is what the budget endpoints need.
type BudgetStore interface {
	storage.BudgetStore
	GetCategory(ctx context.Context, userID, id int64) (models.Category, error)
}

// BudgetHandler serves owner-scoped budget CRUD.
type BudgetHandler struct {
	store BudgetStore
}

func NewBudgetHandler(store BudgetStore) *BudgetHandler {
	return &BudgetHandler{store: store}
}

func (h *BudgetHandler) Register(rt Router) {
	rt.Private("GET /budgets/{$}", h.handleList)
	rt.Private("POST /budgets/{$}", h.handleCreate)
	rt.Private("GET /budgets/{id}/{$}", h.handleGet)
	rt.Private("PUT /budgets/{id}/{$}", h.handleUpdate(false))
	rt.Private("PATCH /budgets/{id}/{$}", h.handleUpdate(true))
	rt.Private("DELETE /budgets/{id}/{$}", h.handleDelete)
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.store.ListBudgets(r.Context(), caller(r).ID)
	if err != nil {
		storeError(w, r, "list budgets", err)
		return
	}
	respond.JSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.BudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user := caller(r)
	b := models.Budget{UserID: user.ID}
	if err := applyBudget(&b, req, false); err != nil {
		storeError(w, r, "validate budget", err)
		return
	}
	if err := h.checkCategory(r.Context(), user.ID, b.CategoryID); err != nil {
		storeError(w, r, "check category", err)
		return
	}
	created, err := h.store.CreateBudget(r.Context(), b)
	if err != nil {
		storeError(w, r, "create budget", err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.store.GetBudget(r.Context(), caller(r).ID, id)
	if err != nil {
		storeError(w, r, "get budget", err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) handleUpdate(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req dto.BudgetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		user := caller(r)
		b, err := h.store.GetBudget(r.Context(), user.ID, id)
		if err != nil {
			storeError(w, r, "get budget", err)
			return
		}
		if err := applyBudget(&b, req, partial); err != nil {
			storeError(w, r, "validate budget", err)
			return
		}
		if err := h.checkCategory(r.Context(), user.ID, b.CategoryID); err != nil {
			storeError(w, r, "check category", err)
			return
		}
		updated, err := h.store.UpdateBudget(r.Context(), b)
		if err != nil {
			storeError(w, r, "update budget", err)
			return
		}
		respond.JSON(w, http.StatusOK, updated)
	}
}

func (h *BudgetHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteBudget(r.Context(), caller(r).ID, id); err != nil {
		storeError(w, r, "delete budget", err)
		return
	}
	respond.NoContent(w)
}

func (h *BudgetHandler) checkCategory(ctx context.Context, userID int64, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	_, err := h.store.GetCategory(ctx, userID, *categoryID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.FieldError("category", "invalid category")
	}
	return err
}

func applyBudget(b *models.Budget, req dto.BudgetRequest, partial bool) error {
	if !partial {
		errs := models.ValidationErrors{}
		if req.Amount == nil {
			errs.Add("amount", "this field is required")
		}
		if req.StartDate == nil {
			errs.Add("start_date", "this field is required")
		}
		if req.EndDate == nil {
			errs.Add("end_date", "this field is required")
		}
		if err := errs.Err(); err != nil {
			return err
		}
		b.CategoryID = nil
	}
	if req.Category.Set {
		b.CategoryID = req.Category.Value
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		b.EndDate = *req.EndDate
	}
	return b.Validate()
}
