package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// ProviderHandler handles HTTP requests for the price provider settings.
type ProviderHandler struct {
	providerService *service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler with the provided service dependency.
func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{
		providerService: providerService,
	}
}

// GetConfig handles GET requests for the stored provider configuration.
// The API key itself is never returned, only whether one is stored.
//
// Endpoint: GET /api/provider/config
func (h *ProviderHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.providerService.GetConfig()
	if errors.Is(err, apperrors.ErrProviderConfigNotFound) {
		respondError(w, http.StatusNotFound, "No provider configuration stored", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve provider configuration", err)
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// SaveConfig handles PUT requests to replace the provider configuration.
//
// Endpoint: PUT /api/provider/config
func (h *ProviderHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req request.SaveProviderConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := h.providerService.SaveConfig(req.Currency, req.APIKey)
	if err != nil {
		respondError(w, statusForError(err), "Failed to save provider configuration", err)
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}
