package handlers

import (
	"net/http"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// AnalysisHandler handles HTTP requests for the analysis pipeline and the
// snapshot history it produces.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	historyRepo     *repository.HistoryRepository
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided dependencies.
func NewAnalysisHandler(analysisService *service.AnalysisService, historyRepo *repository.HistoryRepository) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		historyRepo:     historyRepo,
	}
}

// Run handles POST requests to execute one analysis run: aggregate all lots,
// append a history snapshot and evaluate alerts.
//
// Endpoint: POST /api/analysis/run?byWallet=true
// Response: 200 OK with the analysis report
// Error: 502 Bad Gateway when the price lookup fails; history is untouched
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	byWallet := r.URL.Query().Get("byWallet") == "true"

	report, err := h.analysisService.Analyze(r.Context(), byWallet)
	if err != nil {
		respondError(w, statusForError(err), "Analysis run failed", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// History handles GET requests for one symbol's snapshot time series.
//
// Endpoint: GET /api/analysis/history?symbol=BTC
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol parameter is required", nil)
		return
	}

	entries, err := h.historyRepo.GetHistoryBySymbol(symbol)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// Symbols handles GET requests for the distinct symbols present in history,
// ordered by first appearance.
//
// Endpoint: GET /api/analysis/history/symbols
func (h *AnalysisHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.historyRepo.ListSymbols()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve symbols", err)
		return
	}

	respondJSON(w, http.StatusOK, symbols)
}
