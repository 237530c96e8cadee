// Package server assembles the HTTP API: one handler type per resource, a
// shared error-to-status mapping and the chi router wiring them together.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Detail: err.Error()})
}

// statusFor maps service errors onto HTTP statuses. Domain rule violations
// and malformed ids are client errors; unknown errors stay opaque 500s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, ports.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ports.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrInvalidID),
		errors.Is(err, ports.ErrEmptyUpdate),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidAccountCount),
		errors.Is(err, domain.ErrEmptyOperations),
		errors.Is(err, domain.ErrSameDirectionLegs),
		errors.Is(err, domain.ErrDuplicateAccountInLeg):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
