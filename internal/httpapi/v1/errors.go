package v1

import (
	"errors"
	"net/http"

	"github.com/openbooks/reporting/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func conflict(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusConflict, msg, "conflict") }
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}
func internalError(w http.ResponseWriter) {
	writeErr(w, http.StatusInternalServerError, "internal_error", "internal_error")
}

// writeDomainErr maps sentinel errors onto HTTP statuses.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrDuplicateCode), errors.Is(err, errs.ErrConflict):
		conflict(w, err.Error())
	case errors.Is(err, errs.ErrUnprocessable):
		unprocessable(w, err.Error(), "unprocessable")
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, err.Error())
	default:
		internalError(w)
	}
}
