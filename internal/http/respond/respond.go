package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongminglow/finance-tracker-be/internal/models"
)

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Validation writes a 400 with the field to message mapping as the body.
func Validation(w http.ResponseWriter, errs models.ValidationErrors) {
	JSON(w, http.StatusBadRequest, errs)
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
