package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbuzz/finbuzz/internal/chat"
	"github.com/finbuzz/finbuzz/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError maps domain errors onto HTTP statuses, preferring the
// user-facing message when one was attached.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrWeakPassword),
		errors.Is(err, chat.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrEmailInUse), errors.Is(err, common.ErrDuplicateEntry):
		status = http.StatusConflict
	case errors.Is(err, chat.ErrBusy):
		status = http.StatusTooManyRequests
	case errors.Is(err, common.ErrBankUnavailable):
		status = http.StatusBadGateway
	}

	var uerr *common.UserError
	var msg string
	switch {
	case errors.As(err, &uerr):
		msg = uerr.UserMessage
	case status != http.StatusInternalServerError:
		msg = err.Error()
	default:
		msg = "Something went wrong. Please try again."
	}
	writeError(w, status, msg)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.NewUserError("Invalid request body", common.ErrInvalidInput)
	}
	return nil
}
