package testutil

import (
	"database/sql"
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// LotBuilder provides a fluent interface for creating test lots.
//
// Example usage:
//
//	// Simple creation with defaults
//	lot := testutil.NewLot().Build(t, db)
//
//	// Customized lot
//	lot := testutil.NewLot().
//	    WithCoin("ethereum", "ETH").
//	    WithAmount(2.5).
//	    WithBuyPrice(3000).
//	    WithCategory(model.CategoryRisk).
//	    Build(t, db)
type LotBuilder struct {
	CoinID     string
	Symbol     string
	Amount     float64
	BuyPrice   float64
	FeeBuyPct  float64
	FeeSellPct float64
	Category   model.Category
	Wallet     string
	EntryKind  model.EntryKind
}

// NewLot creates a LotBuilder with sensible defaults.
func NewLot() *LotBuilder {
	return &LotBuilder{
		CoinID:     "bitcoin",
		Symbol:     "BTC",
		Amount:     1,
		BuyPrice:   50000,
		FeeBuyPct:  1,
		FeeSellPct: 1,
		Category:   model.CategoryClassic,
		EntryKind:  model.EntryKindPurchase,
	}
}

// WithCoin sets the coin ID and display symbol.
func (b *LotBuilder) WithCoin(coinID, symbol string) *LotBuilder {
	b.CoinID = coinID
	b.Symbol = symbol
	return b
}

// WithAmount sets the quantity held.
func (b *LotBuilder) WithAmount(amount float64) *LotBuilder {
	b.Amount = amount
	return b
}

// WithBuyPrice sets the unit cost at acquisition time.
func (b *LotBuilder) WithBuyPrice(price float64) *LotBuilder {
	b.BuyPrice = price
	return b
}

// WithFees sets the buy and sell fee percentages.
func (b *LotBuilder) WithFees(buyPct, sellPct float64) *LotBuilder {
	b.FeeBuyPct = buyPct
	b.FeeSellPct = sellPct
	return b
}

// WithCategory sets the coin category.
func (b *LotBuilder) WithCategory(category model.Category) *LotBuilder {
	b.Category = category
	return b
}

// InWallet sets the custodial wallet label.
func (b *LotBuilder) InWallet(wallet string) *LotBuilder {
	b.Wallet = wallet
	return b
}

// Staking marks the lot as a staking gain: zero cost, zero fees.
func (b *LotBuilder) Staking() *LotBuilder {
	b.EntryKind = model.EntryKindStaking
	b.BuyPrice = 0
	b.FeeBuyPct = 0
	b.FeeSellPct = 0
	return b
}

// Build inserts the lot and returns it with its assigned ID.
func (b *LotBuilder) Build(t *testing.T, db *sql.DB) model.Lot {
	t.Helper()

	var wallet any
	if b.Wallet != "" {
		wallet = b.Wallet
	}

	result, err := db.Exec(
		`INSERT INTO portfolio_lot (coin_id, symbol, amount, buy_price, fee_buy_pct, fee_sell_pct, category, wallet, entry_kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.CoinID, b.Symbol, b.Amount, b.BuyPrice, b.FeeBuyPct, b.FeeSellPct, string(b.Category), wallet, string(b.EntryKind),
	)
	if err != nil {
		t.Fatalf("Failed to insert test lot: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test lot ID: %v", err)
	}

	return model.Lot{
		ID:         id,
		CoinID:     b.CoinID,
		Symbol:     b.Symbol,
		Amount:     b.Amount,
		BuyPrice:   b.BuyPrice,
		FeeBuyPct:  b.FeeBuyPct,
		FeeSellPct: b.FeeSellPct,
		Category:   b.Category,
		Wallet:     b.Wallet,
		EntryKind:  b.EntryKind,
	}
}

// Model returns the lot without inserting it, for engine tests that operate
// on in-memory slices.
func (b *LotBuilder) Model() model.Lot {
	return model.Lot{
		CoinID:     b.CoinID,
		Symbol:     b.Symbol,
		Amount:     b.Amount,
		BuyPrice:   b.BuyPrice,
		FeeBuyPct:  b.FeeBuyPct,
		FeeSellPct: b.FeeSellPct,
		Category:   b.Category,
		Wallet:     b.Wallet,
		EntryKind:  b.EntryKind,
	}
}
