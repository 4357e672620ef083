package model

import "time"

// AggregateRow holds the computed metrics for one (coin, symbol[, wallet])
// group in a single analysis run. It is derived data, produced fresh on every
// run, and is never stored as-is; snapshots of it land in the history table.
type AggregateRow struct {
	CoinID          string   `json:"coinId"`
	Symbol          string   `json:"symbol"`
	Wallet          string   `json:"wallet,omitempty"`
	TotalAmount     float64  `json:"totalAmount"`
	PurchasedAmount float64  `json:"purchasedAmount"`
	AvgBuyPrice     float64  `json:"avgBuyPrice"`
	AvgFeeBuyPct    float64  `json:"avgFeeBuyPct"`
	AvgFeeSellPct   float64  `json:"avgFeeSellPct"`
	InvestedValue   float64  `json:"investedValue"`
	CurrentPrice    float64  `json:"currentPrice"`
	CurrentValueNet float64  `json:"currentValueNet"`
	PctChangeNet    float64  `json:"pctChangeNet"`
	CategoryLabel   Category `json:"categoryLabel"`

	// PriceFound is false when the lookup had no usable price for the coin
	// and the zero-price fallback was applied. Callers may want to surface
	// this, as a zero price drags PctChangeNet toward -100%.
	PriceFound bool `json:"priceFound"`
}

// HistoryEntry is one immutable, append-only snapshot row. All rows written
// by the same analysis run share a single timestamp.
type HistoryEntry struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	CoinID          string    `json:"coinId"`
	Symbol          string    `json:"symbol"`
	Wallet          string    `json:"wallet,omitempty"`
	CurrentPrice    float64   `json:"currentPrice"`
	CurrentValueNet float64   `json:"currentValueNet"`
	PctChangeNet    float64   `json:"pctChangeNet"`
}

// AlertKind identifies which threshold an alert was triggered by.
type AlertKind string

const (
	AlertTakeProfit AlertKind = "take_profit"
	AlertStopLoss   AlertKind = "stop_loss"
)

// Alert reports a threshold breach on a risk-category aggregate row.
// Alerts carry no state: they are recomputed on every run and re-fire for
// as long as the breach persists.
type Alert struct {
	Kind         AlertKind `json:"kind"`
	CoinID       string    `json:"coinId"`
	Symbol       string    `json:"symbol"`
	Wallet       string    `json:"wallet,omitempty"`
	PctChangeNet float64   `json:"pctChangeNet"`
	Threshold    float64   `json:"threshold"`
}

// AnalysisReport is the result of one full analysis run.
type AnalysisReport struct {
	Timestamp time.Time      `json:"timestamp"`
	ByWallet  bool           `json:"byWallet"`
	Rows      []AggregateRow `json:"rows"`
	Alerts    []Alert        `json:"alerts"`
}
