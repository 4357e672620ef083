package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError sends a JSON error response with a message and error detail
func respondError(w http.ResponseWriter, status int, message string, err error) {
	errorResponse := map[string]string{
		"error": message,
	}
	if err != nil {
		errorResponse["detail"] = err.Error()
	}
	respondJSON(w, status, errorResponse)
}

// statusForError maps the error taxonomy onto HTTP status codes:
// missing entities → 404, recoverable input errors → 400, upstream price
// lookup failures → 502, everything else → 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrLotNotFound),
		errors.Is(err, apperrors.ErrProviderConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidLotID),
		errors.Is(err, apperrors.ErrInvalidNumericInput),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrInvalidFeePct),
		errors.Is(err, apperrors.ErrInvalidEntryKind),
		errors.Is(err, apperrors.ErrMissingCoinID),
		errors.Is(err, apperrors.ErrMissingSymbol),
		errors.Is(err, apperrors.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrEncryptionUnavailable):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrPriceFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
