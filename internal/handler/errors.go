package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// errBadRequest marks requests rejected before reaching the service layer
// (malformed JSON, unparsable parameters).
var errBadRequest = errors.New("bad request")

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "workflow not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeValidation, Message: unwrapMessage(err, domain.ErrValidation)}}
}

// writeError maps err onto a status code and error body. what names the
// resource for not-found and conflict messages ("workflow", "tag").
func writeError(w http.ResponseWriter, r *http.Request, err error, what string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(what+" not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		msg := what + " already exists"
		writeJSON(w, http.StatusConflict, api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeConflict, Message: msg}})
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadRequest, Message: "request body too large"},
		})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadRequest, Message: unwrapMessage(err, errBadRequest)},
		})
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeInternal, Message: "internal server error"},
		})
	}
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.WorkflowService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client has gone away; nothing useful to do.
	json.NewEncoder(w).Encode(v)
}
