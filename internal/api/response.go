package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/importer"
	"github.com/erazemk/stockroom/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// errorResponse maps a domain error to its HTTP status. Anything unexpected
// is logged and reported as a 500 without details.
func errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *model.FieldError
	switch {
	case errors.As(err, &fieldErr):
		jsonResponse(w, http.StatusBadRequest, map[string]string{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, model.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrLoanNotOpen),
		errors.Is(err, model.ErrDuplicateSKU),
		errors.Is(err, model.ErrStaleItem):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrReturnMismatch):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, importer.ErrUnreadableFile):
		jsonError(w, http.StatusUnprocessableEntity, "failed to parse file, please check the format")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
