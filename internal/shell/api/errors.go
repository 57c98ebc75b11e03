package api

import (
	"errors"
	"net/http"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/artpar/swplanet/internal/shell/store"
)

// ErrorMapping is the HTTP rendering of a service or store error.
type ErrorMapping struct {
	Status  int
	Code    string
	Message string
}

// MapServiceError converts a service error to its HTTP status and error code.
// Unrecognised errors map to 500 with a generic message so internals do not leak.
func MapServiceError(err error) ErrorMapping {
	switch {
	// ===== Validation Errors → 422 =====
	case errors.Is(err, domain.ErrValidation):
		return ErrorMapping{http.StatusUnprocessableEntity, "validation_error", err.Error()}

	// ===== Integrity Errors → 409 =====
	case store.IsConflict(err):
		msg := "planet violates a data constraint"
		if errors.Is(err, store.ErrDuplicateName) {
			msg = "planet with this name already exists"
		}
		return ErrorMapping{http.StatusConflict, "conflict", msg}

	// ===== Not Found Errors → 404 =====
	case store.IsNotFound(err):
		return ErrorMapping{http.StatusNotFound, "planet_not_found", "planet not found"}
	}

	return ErrorMapping{http.StatusInternalServerError, "internal_error", "internal server error"}
}

// writeServiceError logs err and writes its mapped HTTP response.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	m := MapServiceError(err)
	if m.Status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", "error", err)
	} else {
		h.logger.Debug(op+" rejected", "error", err, "status", m.Status)
	}
	h.writeError(w, m.Status, m.Message, m.Code)
}
