package httpapi

import (
    "errors"
    "net/http"

    "github.com/tdunne/bankbook/internal/errs"
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

// domainErr maps bank sentinel errors onto HTTP statuses and codes.
func domainErr(w http.ResponseWriter, err error) {
    msg := err.Error()
    switch {
    case errors.Is(err, errs.ErrNotFound):
        notFound(w)
    case errors.Is(err, errs.ErrUnknownKind):
        writeErr(w, http.StatusUnprocessableEntity, msg, "unknown_account_kind")
    case errors.Is(err, errs.ErrOverdrawn):
        writeErr(w, http.StatusUnprocessableEntity, msg, "overdrawn")
    case errors.Is(err, errs.ErrDailyLimit):
        writeErr(w, http.StatusUnprocessableEntity, msg, "daily_limit")
    case errors.Is(err, errs.ErrMonthlyLimit):
        writeErr(w, http.StatusUnprocessableEntity, msg, "monthly_limit")
    case errors.Is(err, errs.ErrOutOfOrder):
        writeErr(w, http.StatusUnprocessableEntity, msg, "out_of_order")
    case errors.Is(err, errs.ErrInterestApplied):
        writeErr(w, http.StatusConflict, msg, "interest_applied")
    case errors.Is(err, errs.ErrBadSnapshot):
        writeErr(w, http.StatusUnprocessableEntity, msg, "bad_snapshot")
    default:
        writeErr(w, http.StatusInternalServerError, msg, "")
    }
}
