package service

import (
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// AlertService scans aggregation output for take-profit / stop-loss breaches
// on rows whose category label matches the configured risk category. It keeps
// no state: alerts are recomputed fresh on every run and are not deduplicated
// across runs.
type AlertService struct {
	riskCategory  model.Category
	takeProfitPct float64
	stopLossPct   float64
}

// NewAlertService creates a new AlertService from the alert configuration.
func NewAlertService(cfg config.AlertConfig) *AlertService {
	return &AlertService{
		riskCategory:  model.Category(cfg.RiskCategory),
		takeProfitPct: cfg.TakeProfitPct,
		stopLossPct:   cfg.StopLossPct,
	}
}

// Evaluate returns at most one alert per eligible row: a take-profit alert
// when the net change reaches the upper threshold, or a stop-loss alert when
// it reaches the lower one. Rows outside the risk category never alert.
func (s *AlertService) Evaluate(rows []model.AggregateRow) []model.Alert {
	alerts := []model.Alert{}

	for _, row := range rows {
		if row.CategoryLabel != s.riskCategory {
			continue
		}

		switch {
		case row.PctChangeNet >= s.takeProfitPct:
			alerts = append(alerts, model.Alert{
				Kind:         model.AlertTakeProfit,
				CoinID:       row.CoinID,
				Symbol:       row.Symbol,
				Wallet:       row.Wallet,
				PctChangeNet: row.PctChangeNet,
				Threshold:    s.takeProfitPct,
			})
		case row.PctChangeNet <= s.stopLossPct:
			alerts = append(alerts, model.Alert{
				Kind:         model.AlertStopLoss,
				CoinID:       row.CoinID,
				Symbol:       row.Symbol,
				Wallet:       row.Wallet,
				PctChangeNet: row.PctChangeNet,
				Threshold:    s.stopLossPct,
			})
		}
	}

	return alerts
}
