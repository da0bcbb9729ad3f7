package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/logger"
	"partyhub-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps the domain error taxonomy onto HTTP statuses. The message
// is the sentinel's text so the app can show the specific rule violated.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrActivePartyExists),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPartyFull),
		errors.Is(err, domain.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrPartyUnavailable):
		status = http.StatusGone
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRefundPending):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrInvalidDraft),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidAmount):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeErrorMessage(w, status, "internal error")
		return
	}
	writeErrorMessage(w, status, err.Error())
}
