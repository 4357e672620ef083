package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	lotService *service.LotService,
	analysisService *service.AnalysisService,
	providerService *service.ProviderService,
	historyRepo *repository.HistoryRepository,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/lot", func(r chi.Router) {
			lotHandler := handlers.NewLotHandler(lotService)
			r.Get("/", lotHandler.Lots)
			r.Post("/", lotHandler.CreateLot)
			r.Get("/wallets", lotHandler.Wallets)
			r.Put("/{id}", lotHandler.UpdateLot)
			r.Delete("/{id}", lotHandler.DeleteLot)
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(analysisService, historyRepo)
			r.Post("/run", analysisHandler.Run)
			r.Get("/history", analysisHandler.History)
			r.Get("/history/symbols", analysisHandler.Symbols)
		})

		r.Route("/provider", func(r chi.Router) {
			providerHandler := handlers.NewProviderHandler(providerService)
			r.Get("/config", providerHandler.GetConfig)
			r.Put("/config", providerHandler.SaveConfig)
		})
	})

	return r
}
