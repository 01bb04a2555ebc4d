package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			respond.Validation(w, models.ValidationErrors{typeErr.Field: fieldMessage(typeErr)})
		case errors.Is(err, io.EOF):
			respond.Error(w, http.StatusBadRequest, "request body is empty")
		default:
			respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		}
		return false
	}
	return true
}

func fieldMessage(err *json.UnmarshalTypeError) string {
	switch err.Type {
	case reflect.TypeOf(models.Amount{}):
		return models.ErrAmountRange.Error()
	case reflect.TypeOf(models.Date{}):
		return "date must be YYYY-MM-DD"
	}
	return "invalid value"
}

// pathID parses the {id} wildcard; malformed ids surface as not found.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// caller returns the authenticated user placed on the context by middleware.
func caller(r *http.Request) models.User {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		panic("handlers: private route reached without authenticated user")
	}
	return user
}

// storeError maps persistence errors to responses.
func storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if v, ok := models.AsValidation(err); ok {
		respond.Validation(w, v)
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "not found")
		return
	}
	applog.FromContext(r.Context()).Error(fmt.Sprintf("%s failed", op),
		applog.FieldOperation, op, applog.FieldError, err)
	respond.Error(w, http.StatusInternalServerError, "internal server error")
}
