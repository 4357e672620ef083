package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ParseLotID parses a lot ID path parameter into its integer form.
func ParseLotID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidLotID, raw)
	}
	return id, nil
}

// ValidateLot checks the numeric invariants of a lot: non-negative amount
// and fee percentages within [0, 100]. Identity fields are checked too so a
// lot can never be stored without a coin ID or symbol.
func ValidateLot(lot model.Lot) error {
	if strings.TrimSpace(lot.CoinID) == "" {
		return apperrors.ErrMissingCoinID
	}
	if strings.TrimSpace(lot.Symbol) == "" {
		return apperrors.ErrMissingSymbol
	}
	if lot.Amount < 0 {
		return fmt.Errorf("%w: %g", apperrors.ErrNegativeAmount, lot.Amount)
	}
	if lot.FeeBuyPct < 0 || lot.FeeBuyPct > 100 {
		return fmt.Errorf("%w: buy fee %g", apperrors.ErrInvalidFeePct, lot.FeeBuyPct)
	}
	if lot.FeeSellPct < 0 || lot.FeeSellPct > 100 {
		return fmt.Errorf("%w: sell fee %g", apperrors.ErrInvalidFeePct, lot.FeeSellPct)
	}
	return nil
}
