package service

import (
	"strings"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// LotService handles portfolio lot business logic: validation, defaulting
// and the merge semantics of partial edits. Persistence is delegated to the
// lot repository.
type LotService struct {
	lotRepo *repository.LotRepository
}

// NewLotService creates a new LotService with the provided repository dependency.
func NewLotService(lotRepo *repository.LotRepository) *LotService {
	return &LotService{lotRepo: lotRepo}
}

// CreateLot validates and stores a new lot, returning it with its assigned ID.
//
// Defaulting rules:
//   - coin ID is lowercased (canonical lookup key); symbol keeps its case
//   - an unknown category falls back to classic
//   - an empty entry kind defaults to purchase
//   - staking lots are stored with zero buy price and zero fees regardless
//     of what the caller supplied, as staking gains carry no cost
func (s *LotService) CreateLot(lot model.Lot) (model.Lot, error) {
	lot.CoinID = strings.ToLower(strings.TrimSpace(lot.CoinID))
	lot.Symbol = strings.TrimSpace(lot.Symbol)

	if _, ok := model.ParseCategory(string(lot.Category)); !ok {
		lot.Category = model.CategoryClassic
	}
	if lot.EntryKind != model.EntryKindStaking {
		lot.EntryKind = model.EntryKindPurchase
	}
	if lot.EntryKind == model.EntryKindStaking {
		lot.BuyPrice = 0
		lot.FeeBuyPct = 0
		lot.FeeSellPct = 0
	}

	if err := validation.ValidateLot(lot); err != nil {
		return model.Lot{}, err
	}

	return s.lotRepo.CreateLot(lot)
}

// UpdateLot applies a partial edit to the lot with the given ID. The stored
// row is read first, non-nil fields from the update are merged over it, and
// the merged row replaces the stored one. An update with no fields set is a
// no-op that leaves every field at its pre-edit value.
//
// An invalid category in the update keeps the stored category rather than
// failing the whole edit.
func (s *LotService) UpdateLot(id int64, update model.LotUpdate) (model.Lot, error) {
	lot, err := s.lotRepo.GetLot(id)
	if err != nil {
		return model.Lot{}, err
	}

	if update.CoinID != nil {
		lot.CoinID = strings.ToLower(strings.TrimSpace(*update.CoinID))
	}
	if update.Symbol != nil {
		lot.Symbol = strings.TrimSpace(*update.Symbol)
	}
	if update.Amount != nil {
		lot.Amount = *update.Amount
	}
	if update.BuyPrice != nil {
		lot.BuyPrice = *update.BuyPrice
	}
	if update.FeeBuyPct != nil {
		lot.FeeBuyPct = *update.FeeBuyPct
	}
	if update.FeeSellPct != nil {
		lot.FeeSellPct = *update.FeeSellPct
	}
	if update.Category != nil {
		if category, ok := model.ParseCategory(strings.ToLower(*update.Category)); ok {
			lot.Category = category
		}
	}
	if update.Wallet != nil {
		lot.Wallet = strings.TrimSpace(*update.Wallet)
	}
	if update.EntryKind != nil {
		if model.EntryKind(*update.EntryKind) == model.EntryKindStaking {
			lot.EntryKind = model.EntryKindStaking
		} else {
			lot.EntryKind = model.EntryKindPurchase
		}
	}

	if err := validation.ValidateLot(lot); err != nil {
		return model.Lot{}, err
	}

	if err := s.lotRepo.UpdateLot(lot); err != nil {
		return model.Lot{}, err
	}

	return lot, nil
}

// DeleteLot removes the lot with the given ID. Deleting a missing ID returns
// apperrors.ErrLotNotFound, which callers report without treating as fatal.
// History rows are unaffected.
func (s *LotService) DeleteLot(id int64) error {
	return s.lotRepo.DeleteLot(id)
}

// ListLots returns all lots in insertion order.
func (s *LotService) ListLots() ([]model.Lot, error) {
	return s.lotRepo.ListLots()
}

// ListWallets returns the distinct wallet labels in use.
func (s *LotService) ListWallets() ([]string, error) {
	return s.lotRepo.ListWallets()
}
