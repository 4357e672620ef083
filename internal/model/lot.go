package model

// Category classifies a coin for display and alert eligibility.
type Category string

// Supported coin categories. Risk coins are eligible for
// take-profit / stop-loss alerts.
const (
	CategoryClassic Category = "classic"
	CategoryRisk    Category = "risk"
	CategoryStable  Category = "stable"
)

// ParseCategory returns the Category matching s, or false when s is not a
// known category value.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryClassic, CategoryRisk, CategoryStable:
		return Category(s), true
	}
	return "", false
}

// EntryKind distinguishes purchases from staking gains. Staking gains carry
// no acquisition cost and are excluded from cost-basis and fee averaging.
type EntryKind string

const (
	EntryKindPurchase EntryKind = "purchase"
	EntryKindStaking  EntryKind = "staking"
)

// Lot represents one recorded purchase or staking-gain event for a coin.
type Lot struct {
	ID         int64     `json:"id"`
	CoinID     string    `json:"coinId"`
	Symbol     string    `json:"symbol"`
	Amount     float64   `json:"amount"`
	BuyPrice   float64   `json:"buyPrice"`
	FeeBuyPct  float64   `json:"feeBuyPct"`
	FeeSellPct float64   `json:"feeSellPct"`
	Category   Category  `json:"category"`
	Wallet     string    `json:"wallet,omitempty"`
	EntryKind  EntryKind `json:"entryKind"`
}

// LotUpdate is a partial lot edit. Nil fields keep their stored value.
type LotUpdate struct {
	CoinID     *string  `json:"coinId"`
	Symbol     *string  `json:"symbol"`
	Amount     *float64 `json:"amount"`
	BuyPrice   *float64 `json:"buyPrice"`
	FeeBuyPct  *float64 `json:"feeBuyPct"`
	FeeSellPct *float64 `json:"feeSellPct"`
	Category   *string  `json:"category"`
	Wallet     *string  `json:"wallet"`
	EntryKind  *string  `json:"entryKind"`
}
