package validation

import (
	"errors"
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func TestParseLotID(t *testing.T) {
	t.Run("parses a numeric ID", func(t *testing.T) {
		id, err := ParseLotID(" 42 ")
		if err != nil {
			t.Fatalf("ParseLotID() returned unexpected error: %v", err)
		}
		if id != 42 {
			t.Errorf("Expected 42, got %d", id)
		}
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "1.5", "0x1"} {
			if _, err := ParseLotID(raw); !errors.Is(err, apperrors.ErrInvalidLotID) {
				t.Errorf("ParseLotID(%q): expected ErrInvalidLotID, got %v", raw, err)
			}
		}
	})
}

func TestValidateLot(t *testing.T) {
	valid := model.Lot{
		CoinID:     "bitcoin",
		Symbol:     "BTC",
		Amount:     1,
		FeeBuyPct:  0,
		FeeSellPct: 100,
	}

	if err := ValidateLot(valid); err != nil {
		t.Fatalf("ValidateLot() rejected a valid lot: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*model.Lot)
		wantErr error
	}{
		{"blank coin ID", func(l *model.Lot) { l.CoinID = "  " }, apperrors.ErrMissingCoinID},
		{"blank symbol", func(l *model.Lot) { l.Symbol = "" }, apperrors.ErrMissingSymbol},
		{"negative amount", func(l *model.Lot) { l.Amount = -0.001 }, apperrors.ErrNegativeAmount},
		{"buy fee below zero", func(l *model.Lot) { l.FeeBuyPct = -1 }, apperrors.ErrInvalidFeePct},
		{"sell fee above hundred", func(l *model.Lot) { l.FeeSellPct = 100.01 }, apperrors.ErrInvalidFeePct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := valid
			tt.mutate(&lot)
			if err := ValidateLot(lot); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
