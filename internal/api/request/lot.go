package request

import "github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"

// CreateLotRequest is the payload for adding a purchase or staking lot.
type CreateLotRequest struct {
	CoinID     string  `json:"coinId"`
	Symbol     string  `json:"symbol"`
	Amount     float64 `json:"amount"`
	BuyPrice   float64 `json:"buyPrice"`
	FeeBuyPct  float64 `json:"feeBuyPct"`
	FeeSellPct float64 `json:"feeSellPct"`
	Category   string  `json:"category"`
	Wallet     string  `json:"wallet"`
	EntryKind  string  `json:"entryKind"`
}

// ToModel converts the request into a lot for the service layer.
func (r CreateLotRequest) ToModel() model.Lot {
	return model.Lot{
		CoinID:     r.CoinID,
		Symbol:     r.Symbol,
		Amount:     r.Amount,
		BuyPrice:   r.BuyPrice,
		FeeBuyPct:  r.FeeBuyPct,
		FeeSellPct: r.FeeSellPct,
		Category:   model.Category(r.Category),
		Wallet:     r.Wallet,
		EntryKind:  model.EntryKind(r.EntryKind),
	}
}

// UpdateLotRequest is the payload for a partial lot edit. Absent fields keep
// their stored value.
type UpdateLotRequest struct {
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

// ToModel converts the request into a partial update for the service layer.
func (r UpdateLotRequest) ToModel() model.LotUpdate {
	return model.LotUpdate{
		CoinID:     r.CoinID,
		Symbol:     r.Symbol,
		Amount:     r.Amount,
		BuyPrice:   r.BuyPrice,
		FeeBuyPct:  r.FeeBuyPct,
		FeeSellPct: r.FeeSellPct,
		Category:   r.Category,
		Wallet:     r.Wallet,
		EntryKind:  r.EntryKind,
	}
}
