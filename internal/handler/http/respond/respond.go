// Package respond provides utilities for sending JSON HTTP responses.
// Error responses are sanitized so store internals never leak to clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newscrawl/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, only logging remains.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the raw error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError writes a JSON error response, exposing the message only for
// errors the client may see: validation errors and the domain sentinels.
// Everything else is logged with credentials masked and reported as a
// generic internal error.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if code < 500 && isClientSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", Sanitize(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// isClientSafe reports whether the error message can be shown to clients.
func isClientSafe(err error) bool {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	return errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrInvalidInput) ||
		errors.Is(err, entity.ErrDuplicateURL)
}
