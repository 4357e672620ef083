package service_test

import (
	"errors"
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestLotService_CreateLot(t *testing.T) {
	t.Run("stores a valid lot and assigns an ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		created, err := svc.CreateLot(model.Lot{
			CoinID:     "Bitcoin",
			Symbol:     "BTC",
			Amount:     1.5,
			BuyPrice:   48000,
			FeeBuyPct:  0.5,
			FeeSellPct: 0.5,
			Category:   model.CategoryClassic,
		})
		if err != nil {
			t.Fatalf("CreateLot() returned unexpected error: %v", err)
		}

		if created.ID == 0 {
			t.Error("Expected a non-zero assigned ID")
		}
		if created.CoinID != "bitcoin" {
			t.Errorf("Expected lowercased coin ID bitcoin, got %s", created.CoinID)
		}
		if created.EntryKind != model.EntryKindPurchase {
			t.Errorf("Expected default entry kind purchase, got %s", created.EntryKind)
		}
		testutil.AssertRowCount(t, db, "portfolio_lot", 1)
	})

	t.Run("unknown category falls back to classic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		created, err := svc.CreateLot(model.Lot{
			CoinID:   "bitcoin",
			Symbol:   "BTC",
			Amount:   1,
			Category: model.Category("speculative"),
		})
		if err != nil {
			t.Fatalf("CreateLot() returned unexpected error: %v", err)
		}

		if created.Category != model.CategoryClassic {
			t.Errorf("Expected fallback category classic, got %s", created.Category)
		}
	})

	t.Run("staking lots are stored without cost or fees", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		created, err := svc.CreateLot(model.Lot{
			CoinID:     "cosmos",
			Symbol:     "ATOM",
			Amount:     12,
			BuyPrice:   9.5,
			FeeBuyPct:  1,
			FeeSellPct: 1,
			EntryKind:  model.EntryKindStaking,
		})
		if err != nil {
			t.Fatalf("CreateLot() returned unexpected error: %v", err)
		}

		if created.BuyPrice != 0 || created.FeeBuyPct != 0 || created.FeeSellPct != 0 {
			t.Errorf("Expected zeroed cost fields for staking, got price=%v feeBuy=%v feeSell=%v",
				created.BuyPrice, created.FeeBuyPct, created.FeeSellPct)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		tests := []struct {
			name    string
			lot     model.Lot
			wantErr error
		}{
			{
				name:    "missing coin ID",
				lot:     model.Lot{Symbol: "BTC", Amount: 1},
				wantErr: apperrors.ErrMissingCoinID,
			},
			{
				name:    "missing symbol",
				lot:     model.Lot{CoinID: "bitcoin", Amount: 1},
				wantErr: apperrors.ErrMissingSymbol,
			},
			{
				name:    "negative amount",
				lot:     model.Lot{CoinID: "bitcoin", Symbol: "BTC", Amount: -1},
				wantErr: apperrors.ErrNegativeAmount,
			},
			{
				name:    "fee above 100 percent",
				lot:     model.Lot{CoinID: "bitcoin", Symbol: "BTC", Amount: 1, FeeBuyPct: 101},
				wantErr: apperrors.ErrInvalidFeePct,
			},
			{
				name:    "negative fee",
				lot:     model.Lot{CoinID: "bitcoin", Symbol: "BTC", Amount: 1, FeeSellPct: -0.5},
				wantErr: apperrors.ErrInvalidFeePct,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := svc.CreateLot(tt.lot); !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
			})
		}

		testutil.AssertRowCount(t, db, "portfolio_lot", 0)
	})
}

func TestLotService_UpdateLot(t *testing.T) {
	t.Run("empty update preserves every field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		original := testutil.NewLot().
			WithCoin("ethereum", "ETH").
			WithAmount(2.5).
			WithBuyPrice(3000).
			WithFees(0.75, 0.25).
			WithCategory(model.CategoryRisk).
			InWallet("ledger").
			Build(t, db)

		updated, err := svc.UpdateLot(original.ID, model.LotUpdate{})
		if err != nil {
			t.Fatalf("UpdateLot() returned unexpected error: %v", err)
		}

		if updated != original {
			t.Errorf("Expected empty update to preserve lot.\nBefore: %+v\nAfter:  %+v", original, updated)
		}
	})

	t.Run("merges only the provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		original := testutil.NewLot().WithAmount(1).WithBuyPrice(50000).Build(t, db)

		updated, err := svc.UpdateLot(original.ID, model.LotUpdate{
			Amount: floatPtr(2),
			Wallet: strPtr("exchange"),
		})
		if err != nil {
			t.Fatalf("UpdateLot() returned unexpected error: %v", err)
		}

		if updated.Amount != 2 {
			t.Errorf("Expected updated amount 2, got %v", updated.Amount)
		}
		if updated.Wallet != "exchange" {
			t.Errorf("Expected updated wallet exchange, got %s", updated.Wallet)
		}
		if updated.BuyPrice != 50000 {
			t.Errorf("Expected buy price untouched at 50000, got %v", updated.BuyPrice)
		}
	})

	t.Run("invalid category keeps the stored one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		original := testutil.NewLot().WithCategory(model.CategoryRisk).Build(t, db)

		updated, err := svc.UpdateLot(original.ID, model.LotUpdate{Category: strPtr("aggressive")})
		if err != nil {
			t.Fatalf("UpdateLot() returned unexpected error: %v", err)
		}

		if updated.Category != model.CategoryRisk {
			t.Errorf("Expected stored category risk to survive, got %s", updated.Category)
		}
	})

	t.Run("invalid merged state rejects the edit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		original := testutil.NewLot().Build(t, db)

		_, err := svc.UpdateLot(original.ID, model.LotUpdate{Amount: floatPtr(-3)})
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}

		// The stored row is untouched by the rejected edit.
		unchanged, err := svc.UpdateLot(original.ID, model.LotUpdate{})
		if err != nil {
			t.Fatalf("UpdateLot() returned unexpected error: %v", err)
		}
		if unchanged.Amount != original.Amount {
			t.Errorf("Expected amount %v after rejected edit, got %v", original.Amount, unchanged.Amount)
		}
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		if _, err := svc.UpdateLot(9999, model.LotUpdate{}); !errors.Is(err, apperrors.ErrLotNotFound) {
			t.Errorf("Expected ErrLotNotFound, got %v", err)
		}
	})
}

func TestLotService_DeleteLot(t *testing.T) {
	t.Run("removes an existing lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		lot := testutil.NewLot().Build(t, db)

		if err := svc.DeleteLot(lot.ID); err != nil {
			t.Fatalf("DeleteLot() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "portfolio_lot", 0)
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLotService(t, db)

		if err := svc.DeleteLot(42); !errors.Is(err, apperrors.ErrLotNotFound) {
			t.Errorf("Expected ErrLotNotFound, got %v", err)
		}
	})
}

func TestLotService_ListWallets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestLotService(t, db)

	testutil.NewLot().InWallet("ledger").Build(t, db)
	testutil.NewLot().InWallet("exchange").Build(t, db)
	testutil.NewLot().InWallet("ledger").Build(t, db)
	testutil.NewLot().Build(t, db) // no wallet

	wallets, err := svc.ListWallets()
	if err != nil {
		t.Fatalf("ListWallets() returned unexpected error: %v", err)
	}

	if len(wallets) != 2 {
		t.Fatalf("Expected 2 distinct wallets, got %v", wallets)
	}
	if wallets[0] != "exchange" || wallets[1] != "ledger" {
		t.Errorf("Expected [exchange ledger], got %v", wallets)
	}
}
