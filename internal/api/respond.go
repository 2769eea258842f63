package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/settleapp/settle/internal/apperr"
)

// response is the envelope every successful request returns.
type response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// errorBody is the envelope every failed request returns. Kind is machine
// distinguishable so clients can tell "fix your input" from "you lack
// permission".
type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Data: data, Message: message}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a classified error to its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	body := errorBody{}
	body.Error.Kind = string(kind)
	body.Error.Message = apperr.MessageOf(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		slog.Error("Failed to encode error response", "error", encodeErr)
	}
}

// writeErrorStatus writes an error with an explicit status, for failures
// that happen before the service layer classifies anything.
func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	body := errorBody{}
	switch status {
	case http.StatusUnauthorized:
		body.Error.Kind = string(apperr.KindUnauthenticated)
	default:
		body.Error.Kind = string(apperr.KindValidation)
	}
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validationf("invalid request body")
	}
	return nil
}
