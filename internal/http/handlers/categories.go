package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/models/dto"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// CategoryHandler serves owner-scoped category CRUD.
type CategoryHandler struct {
	store storage.CategoryStore
}

func NewCategoryHandler(store storage.CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func (h *CategoryHandler) Register(rt Router) {
	rt.Private("GET /categories/{$}", h.handleList)
	rt.Private("POST /categories/{$}", h.handleCreate)
	rt.Private("GET /categories/{id}/{$}", h.handleGet)
	rt.Private("PUT /categories/{id}/{$}", h.handleUpdate(false))
	rt.Private("PATCH /categories/{id}/{$}", h.handleUpdate(true))
	rt.Private("DELETE /categories/{id}/{$}", h.handleDelete)
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context(), caller(r).ID)
	if err != nil {
		storeError(w, r, "list categories", err)
		return
	}
	respond.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := models.Category{UserID: caller(r).ID}
	if err := applyCategory(&c, req, false); err != nil {
		storeError(w, r, "validate category", err)
		return
	}
	created, err := h.store.CreateCategory(r.Context(), c)
	if err != nil {
		storeError(w, r, "create category", err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetCategory(r.Context(), caller(r).ID, id)
	if err != nil {
		storeError(w, r, "get category", err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) handleUpdate(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req dto.CategoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		c, err := h.store.GetCategory(r.Context(), caller(r).ID, id)
		if err != nil {
			storeError(w, r, "get category", err)
			return
		}
		if err := applyCategory(&c, req, partial); err != nil {
			storeError(w, r, "validate category", err)
			return
		}
		updated, err := h.store.UpdateCategory(r.Context(), c)
		if err != nil {
			storeError(w, r, "update category", err)
			return
		}
		respond.JSON(w, http.StatusOK, updated)
	}
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteCategory(r.Context(), caller(r).ID, id); err != nil {
		storeError(w, r, "delete category", err)
		return
	}
	respond.NoContent(w)
}

func applyCategory(c *models.Category, req dto.CategoryRequest, partial bool) error {
	if !partial {
		errs := models.ValidationErrors{}
		if req.Name == nil {
			errs.Add("name", "this field is required")
		}
		if req.Type == nil {
			errs.Add("type", "this field is required")
		}
		if err := errs.Err(); err != nil {
			return err
		}
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	return c.Validate()
}
