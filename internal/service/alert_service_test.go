package service_test

import (
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func riskRow(symbol string, pctChange float64) model.AggregateRow {
	return model.AggregateRow{
		CoinID:        symbol,
		Symbol:        symbol,
		PctChangeNet:  pctChange,
		CategoryLabel: model.CategoryRisk,
	}
}

func TestAlertService_Evaluate(t *testing.T) {
	svc := service.NewAlertService(testutil.DefaultAlertConfig())

	t.Run("gain at or above the take-profit threshold alerts", func(t *testing.T) {
		alerts := svc.Evaluate([]model.AggregateRow{riskRow("SOL", 25)})

		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Kind != model.AlertTakeProfit {
			t.Errorf("Expected take-profit alert, got %s", alerts[0].Kind)
		}
		if alerts[0].Threshold != 20 {
			t.Errorf("Expected threshold 20, got %v", alerts[0].Threshold)
		}

		// Exactly on the threshold counts as a breach.
		alerts = svc.Evaluate([]model.AggregateRow{riskRow("SOL", 20)})
		if len(alerts) != 1 || alerts[0].Kind != model.AlertTakeProfit {
			t.Errorf("Expected take-profit alert at exactly 20%%, got %v", alerts)
		}
	})

	t.Run("loss at or below the stop-loss threshold alerts", func(t *testing.T) {
		alerts := svc.Evaluate([]model.AggregateRow{riskRow("SOL", -20)})

		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Kind != model.AlertStopLoss {
			t.Errorf("Expected stop-loss alert, got %s", alerts[0].Kind)
		}
		if alerts[0].Threshold != -15 {
			t.Errorf("Expected threshold -15, got %v", alerts[0].Threshold)
		}
	})

	t.Run("change inside the band stays silent", func(t *testing.T) {
		rows := []model.AggregateRow{
			riskRow("SOL", 5),
			riskRow("AVAX", -10),
			riskRow("DOT", 0),
		}

		if alerts := svc.Evaluate(rows); len(alerts) != 0 {
			t.Errorf("Expected no alerts inside the band, got %d", len(alerts))
		}
	})

	t.Run("rows outside the risk category never alert", func(t *testing.T) {
		rows := []model.AggregateRow{
			{Symbol: "BTC", PctChangeNet: 80, CategoryLabel: model.CategoryClassic},
			{Symbol: "USDC", PctChangeNet: -90, CategoryLabel: model.CategoryStable},
		}

		if alerts := svc.Evaluate(rows); len(alerts) != 0 {
			t.Errorf("Expected no alerts for non-risk rows, got %d", len(alerts))
		}
	})

	t.Run("each row raises at most one alert", func(t *testing.T) {
		rows := []model.AggregateRow{
			riskRow("SOL", 30),
			riskRow("AVAX", -40),
			riskRow("DOT", 2),
		}

		alerts := svc.Evaluate(rows)
		if len(alerts) != 2 {
			t.Fatalf("Expected 2 alerts, got %d", len(alerts))
		}
		if alerts[0].Kind != model.AlertTakeProfit || alerts[1].Kind != model.AlertStopLoss {
			t.Errorf("Expected [take_profit stop_loss], got [%s %s]", alerts[0].Kind, alerts[1].Kind)
		}
	})

	t.Run("alternate thresholds widen the band", func(t *testing.T) {
		wide := service.NewAlertService(config.AlertConfig{
			RiskCategory:  "risk",
			TakeProfitPct: 50,
			StopLossPct:   -30,
		})

		rows := []model.AggregateRow{
			riskRow("SOL", 25),
			riskRow("AVAX", -20),
		}
		if alerts := wide.Evaluate(rows); len(alerts) != 0 {
			t.Errorf("Expected no alerts inside the widened band, got %d", len(alerts))
		}

		rows = []model.AggregateRow{
			riskRow("SOL", 55),
			riskRow("AVAX", -35),
		}
		alerts := wide.Evaluate(rows)
		if len(alerts) != 2 {
			t.Errorf("Expected 2 alerts past the widened thresholds, got %d", len(alerts))
		}
	})
}
