package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// Rounding precisions applied at the presentation boundary. Internal math
// always runs on unrounded values; only the emitted AggregateRow fields are
// rounded.
const (
	// PricePrecision rounds price-like values to 6 decimals.
	PricePrecision = 1e6
	// CurrencyPrecision rounds currency totals to 2 decimals.
	CurrencyPrecision = 100
	// PercentPrecision rounds percentages to 2 decimals.
	PercentPrecision = 100
)

// PriceSource maps a set of coin IDs to current unit prices in one batched
// call. Implemented by the CoinGecko client; tests substitute a stub.
type PriceSource interface {
	GetSimplePrices(ctx context.Context, coinIDs []string, currency string) (map[string]float64, error)
}

// PricingSettings resolves the stored pricing overrides (reporting currency
// and API key). Implemented by ProviderService; nil means no store is wired
// and the environment defaults always apply.
type PricingSettings interface {
	PricingOverride() (currency, apiKey string, err error)
}

// apiKeySetter is the optional capability of a PriceSource to take an API
// key. The CoinGecko client implements it; stubs may ignore it.
type apiKeySetter interface {
	SetAPIKey(key string)
}

// AnalysisService runs the aggregation pipeline: it groups lots per coin
// (optionally per wallet), resolves current prices, computes valuation
// metrics, appends a history snapshot and evaluates alerts.
//
// The service itself is stateless between runs; overlapping Analyze calls
// for the same grouping are collapsed into a single run via singleflight, so
// at most one aggregation per grouping is in flight per process.
type AnalysisService struct {
	lotRepo      *repository.LotRepository
	historyRepo  *repository.HistoryRepository
	priceSource  PriceSource
	settings     PricingSettings
	alertService *AlertService
	currency     string
	runGroup     singleflight.Group
}

// NewAnalysisService creates a new AnalysisService with the provided
// dependencies. currency is the default reporting currency; a stored
// override from settings wins when one exists. settings may be nil.
func NewAnalysisService(
	lotRepo *repository.LotRepository,
	historyRepo *repository.HistoryRepository,
	priceSource PriceSource,
	settings PricingSettings,
	alertService *AlertService,
	currency string,
) *AnalysisService {
	return &AnalysisService{
		lotRepo:      lotRepo,
		historyRepo:  historyRepo,
		priceSource:  priceSource,
		settings:     settings,
		alertService: alertService,
		currency:     currency,
	}
}

// groupKey identifies one aggregation group. Wallet is empty unless the run
// groups by wallet.
type groupKey struct {
	coinID string
	symbol string
	wallet string
}

// Aggregate groups the given lots by (coin, symbol) — or (coin, symbol,
// wallet) when byWallet is true — and computes the per-group metrics.
//
// Groups are emitted in first-seen order of their key, and every lot lands
// in exactly one group. Prices are fetched once for the distinct coin IDs
// across all lots, never per group. An empty input returns an empty result
// without touching the price source; a price lookup failure aborts the whole
// call with apperrors.ErrPriceFetchFailed and no rows.
//
// Weighted metrics (avg buy price, avg fees, invested value) are computed
// over purchase lots only; staking lots contribute to quantity and current
// valuation but carry no cost basis. A group with no purchased amount gets
// zeroes for all weighted metrics rather than NaN.
func (s *AnalysisService) Aggregate(ctx context.Context, lots []model.Lot, byWallet bool) ([]model.AggregateRow, error) {
	rows := []model.AggregateRow{}
	if len(lots) == 0 {
		return rows, nil
	}

	prices, err := s.fetchPrices(ctx, lots)
	if err != nil {
		return nil, err
	}

	order := []groupKey{}
	groups := map[groupKey][]model.Lot{}
	for _, lot := range lots {
		key := groupKey{coinID: lot.CoinID, symbol: lot.Symbol}
		if byWallet {
			key.wallet = lot.Wallet
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], lot)
	}

	for _, key := range order {
		rows = append(rows, s.aggregateGroup(key, groups[key], prices))
	}

	return rows, nil
}

// fetchPrices collects the distinct non-empty coin IDs across all lots in
// first-seen order and resolves them in one batched lookup.
func (s *AnalysisService) fetchPrices(ctx context.Context, lots []model.Lot) (map[string]float64, error) {
	coinIDs := []string{}
	seen := map[string]bool{}
	for _, lot := range lots {
		coinID := strings.ToLower(strings.TrimSpace(lot.CoinID))
		if coinID == "" || seen[coinID] {
			continue
		}
		seen[coinID] = true
		coinIDs = append(coinIDs, coinID)
	}

	if len(coinIDs) == 0 {
		return map[string]float64{}, nil
	}

	prices, err := s.priceSource.GetSimplePrices(ctx, coinIDs, s.lookupCurrency())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPriceFetchFailed, err)
	}
	return prices, nil
}

// lookupCurrency resolves the reporting currency for this run and applies the
// stored API key to the price source. Stored settings are read fresh on every
// run, so a saved configuration takes effect without a restart. A settings
// read failure falls back to the defaults rather than failing the run.
func (s *AnalysisService) lookupCurrency() string {
	currency := s.currency
	if s.settings == nil {
		return currency
	}

	storedCurrency, apiKey, err := s.settings.PricingOverride()
	if err != nil {
		log.Printf("WARN: could not load stored pricing settings: %v", err)
		return currency
	}

	if storedCurrency != "" {
		currency = storedCurrency
	}
	if setter, ok := s.priceSource.(apiKeySetter); ok {
		setter.SetAPIKey(apiKey)
	}

	return currency
}

// aggregateGroup computes the metrics for one group of lots sharing a key.
func (s *AnalysisService) aggregateGroup(key groupKey, lots []model.Lot, prices map[string]float64) model.AggregateRow {
	var totalAmount, purchasedAmount float64
	var weightedBuyPrice, weightedFeeBuy, weightedFeeSell, investedValue float64

	categoryCounts := map[model.Category]int{}
	categoryOrder := []model.Category{}

	for _, lot := range lots {
		totalAmount += lot.Amount

		if _, seen := categoryCounts[lot.Category]; !seen {
			categoryOrder = append(categoryOrder, lot.Category)
		}
		categoryCounts[lot.Category]++

		if lot.EntryKind == model.EntryKindStaking {
			continue
		}

		purchasedAmount += lot.Amount
		weightedBuyPrice += lot.BuyPrice * lot.Amount
		weightedFeeBuy += lot.FeeBuyPct * lot.Amount
		weightedFeeSell += lot.FeeSellPct * lot.Amount
		// Invested value is summed from raw per-lot values, not derived from
		// the rounded average buy price.
		investedValue += lot.BuyPrice * lot.Amount * (1 + lot.FeeBuyPct/100)
	}

	// Zero-fallback: a group with no purchased amount (pure staking) has no
	// cost basis, so every weighted metric is defined as 0.
	var avgBuyPrice, avgFeeBuy, avgFeeSell float64
	if purchasedAmount > 0 {
		avgBuyPrice = weightedBuyPrice / purchasedAmount
		avgFeeBuy = weightedFeeBuy / purchasedAmount
		avgFeeSell = weightedFeeSell / purchasedAmount
	}

	currentPrice, priceFound := prices[strings.ToLower(strings.TrimSpace(key.coinID))]
	if currentPrice == 0 {
		priceFound = false
	}
	if !priceFound {
		currentPrice = 0
		log.Printf("WARN: no price for coin %q, valuing at 0", key.coinID)
	}

	currentValueNet := currentPrice * totalAmount * (1 - avgFeeSell/100)

	pctChangeNet := 0.0
	if investedValue > 0 {
		pctChangeNet = (currentValueNet - investedValue) / investedValue * 100
	}

	// Mode of the category values, first-seen tie-break.
	categoryLabel := model.CategoryClassic
	bestCount := 0
	for _, category := range categoryOrder {
		if categoryCounts[category] > bestCount {
			bestCount = categoryCounts[category]
			categoryLabel = category
		}
	}

	return model.AggregateRow{
		CoinID:          key.coinID,
		Symbol:          key.symbol,
		Wallet:          key.wallet,
		TotalAmount:     totalAmount,
		PurchasedAmount: purchasedAmount,
		AvgBuyPrice:     round(avgBuyPrice, PricePrecision),
		AvgFeeBuyPct:    round(avgFeeBuy, PercentPrecision),
		AvgFeeSellPct:   round(avgFeeSell, PercentPrecision),
		InvestedValue:   round(investedValue, CurrencyPrecision),
		CurrentPrice:    currentPrice,
		CurrentValueNet: round(currentValueNet, CurrencyPrecision),
		PctChangeNet:    round(pctChangeNet, PercentPrecision),
		CategoryLabel:   categoryLabel,
		PriceFound:      priceFound,
	}
}

// Analyze runs the full pipeline: load all lots, aggregate them, append a
// history snapshot and evaluate alerts. Each run is atomic from the outside:
// lots are loaded once, prices fetched once, and the snapshot is appended in
// one transaction, so cancelling between runs can never corrupt state and a
// failure before the append leaves history untouched.
//
// Concurrent Analyze calls with the same grouping share one run's result.
func (s *AnalysisService) Analyze(ctx context.Context, byWallet bool) (model.AnalysisReport, error) {
	key := fmt.Sprintf("analyze:byWallet=%t", byWallet)

	result, err, _ := s.runGroup.Do(key, func() (any, error) {
		return s.runAnalysis(ctx, byWallet)
	})
	if err != nil {
		return model.AnalysisReport{}, err
	}

	return result.(model.AnalysisReport), nil
}

func (s *AnalysisService) runAnalysis(ctx context.Context, byWallet bool) (model.AnalysisReport, error) {
	lots, err := s.lotRepo.ListLots()
	if err != nil {
		return model.AnalysisReport{}, err
	}

	rows, err := s.Aggregate(ctx, lots, byWallet)
	if err != nil {
		return model.AnalysisReport{}, err
	}

	// Honor cancellation before the snapshot is written: a cancelled run
	// aborts cleanly rather than appending.
	if err := ctx.Err(); err != nil {
		return model.AnalysisReport{}, err
	}

	timestamp := time.Now().UTC()
	if len(rows) > 0 {
		timestamp, err = s.historyRepo.AppendSnapshot(rows)
		if err != nil {
			return model.AnalysisReport{}, err
		}
	}

	return model.AnalysisReport{
		Timestamp: timestamp,
		ByWallet:  byWallet,
		Rows:      rows,
		Alerts:    s.alertService.Evaluate(rows),
	}, nil
}

// round rounds x to the precision factor p (e.g. p=100 keeps 2 decimals).
func round(x, p float64) float64 {
	return math.Round(x*p) / p
}
