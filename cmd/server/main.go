package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	lotRepo := repository.NewLotRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	providerConfigRepo := repository.NewProviderConfigRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	lotService := service.NewLotService(lotRepo)
	alertService := service.NewAlertService(cfg.Alerts)
	providerService, err := service.NewProviderService(providerConfigRepo, cfg.Settings.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create provider service: %v", err)
	}

	// Create the price client; stored provider settings (currency override,
	// API key) are resolved by the analysis service on every run
	priceClient := coingecko.NewClient(cfg.Pricing.BaseURL, cfg.Pricing.Timeout)

	analysisService := service.NewAnalysisService(
		lotRepo,
		historyRepo,
		priceClient,
		providerService,
		alertService,
		cfg.Pricing.Currency,
	)
	scheduler := service.NewScheduler(analysisService, cfg.Scheduler.AnalysisInterval)

	// Create router
	router := api.NewRouter(systemService, lotService, analysisService, providerService, historyRepo, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server and scheduler until an interrupt arrives
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return scheduler.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		log.Println("Shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}

	log.Println("Server exited")
}
