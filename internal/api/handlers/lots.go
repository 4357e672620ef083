package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// LotHandler handles HTTP requests for portfolio lot endpoints.
// It parses requests and delegates business logic to the lot service.
type LotHandler struct {
	lotService *service.LotService
}

// NewLotHandler creates a new LotHandler with the provided service dependency.
func NewLotHandler(lotService *service.LotService) *LotHandler {
	return &LotHandler{
		lotService: lotService,
	}
}

// Lots handles GET requests to retrieve all lots in insertion order.
//
// Endpoint: GET /api/lot
func (h *LotHandler) Lots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.lotService.ListLots()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve lots", err)
		return
	}

	respondJSON(w, http.StatusOK, lots)
}

// CreateLot handles POST requests to add a purchase or staking lot.
//
// Endpoint: POST /api/lot
// Response: 201 Created with the stored lot including its assigned ID
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", apperrors.ErrInvalidNumericInput)
		return
	}

	lot, err := h.lotService.CreateLot(req.ToModel())
	if err != nil {
		respondError(w, statusForError(err), "Failed to create lot", err)
		return
	}

	respondJSON(w, http.StatusCreated, lot)
}

// UpdateLot handles PUT requests for partial lot edits. Fields absent from
// the payload keep their stored value.
//
// Endpoint: PUT /api/lot/{id}
func (h *LotHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseLotID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lot ID", err)
		return
	}

	var req request.UpdateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", apperrors.ErrInvalidNumericInput)
		return
	}

	lot, err := h.lotService.UpdateLot(id, req.ToModel())
	if err != nil {
		respondError(w, statusForError(err), "Failed to update lot", err)
		return
	}

	respondJSON(w, http.StatusOK, lot)
}

// DeleteLot handles DELETE requests for a lot by ID. Deleting a missing ID
// reports 404 but has no further effect; history rows are never cascaded.
//
// Endpoint: DELETE /api/lot/{id}
func (h *LotHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseLotID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lot ID", err)
		return
	}

	if err := h.lotService.DeleteLot(id); err != nil {
		respondError(w, statusForError(err), "Failed to delete lot", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Wallets handles GET requests for the distinct wallet labels in use.
//
// Endpoint: GET /api/lot/wallets
func (h *LotHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.lotService.ListWallets()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve wallets", err)
		return
	}

	respondJSON(w, http.StatusOK, wallets)
}
