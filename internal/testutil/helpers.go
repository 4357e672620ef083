package testutil

import (
	"database/sql"
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// DefaultAlertConfig mirrors the default threshold pair (+20/-15) with the
// standard risk category.
func DefaultAlertConfig() config.AlertConfig {
	return config.AlertConfig{
		RiskCategory:  "risk",
		TakeProfitPct: 20,
		StopLossPct:   -15,
	}
}

// NewTestLotService wires a LotService against the given test database.
func NewTestLotService(t *testing.T, db *sql.DB) *service.LotService {
	t.Helper()

	return service.NewLotService(repository.NewLotRepository(db))
}

// NewTestAnalysisService wires an AnalysisService against the given test
// database and price source, using the default alert configuration and CAD
// as the reporting currency. No pricing settings store is wired; use
// NewTestAnalysisServiceWithSettings to exercise stored overrides.
func NewTestAnalysisService(t *testing.T, db *sql.DB, prices service.PriceSource) *service.AnalysisService {
	t.Helper()

	return NewTestAnalysisServiceWithSettings(t, db, prices, nil)
}

// NewTestAnalysisServiceWithSettings wires an AnalysisService with a pricing
// settings source consulted on every run.
func NewTestAnalysisServiceWithSettings(t *testing.T, db *sql.DB, prices service.PriceSource, settings service.PricingSettings) *service.AnalysisService {
	t.Helper()

	return service.NewAnalysisService(
		repository.NewLotRepository(db),
		repository.NewHistoryRepository(db),
		prices,
		settings,
		service.NewAlertService(DefaultAlertConfig()),
		"cad",
	)
}
