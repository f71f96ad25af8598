package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventory/internal/domain"
)

// errorMapping pairs a domain error with its HTTP status and API code. The first match wins.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrDuplicateRegistration, http.StatusConflict, ErrCodeDuplicateRegistration},
	{domain.ErrCapacityExceeded, http.StatusBadRequest, ErrCodeCapacityExceeded},
	{domain.ErrNotRegistered, http.StatusBadRequest, ErrCodeNotRegistered},
	{domain.ErrInvalidRating, http.StatusBadRequest, ErrCodeInvalidRating},
	{domain.ErrDuplicateFeedback, http.StatusBadRequest, ErrCodeDuplicateFeedback},
	{domain.ErrConflict, http.StatusConflict, ErrCodeConflict},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
}

// StatusFor returns the HTTP status and API error code for err. Unmapped errors are 500.
func StatusFor(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteServiceError writes the error envelope for an error returned by a service.
// Unmapped errors are logged and answered with a generic message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, status, code, "internal server error")
		return
	}
	WriteJSONError(w, status, code, err.Error())
}
