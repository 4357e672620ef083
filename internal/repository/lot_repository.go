package repository

import (
	"database/sql"
	"fmt"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// LotRepository provides data access methods for the portfolio_lot table.
// Lot IDs are integer surrogates assigned by SQLite on insert.
type LotRepository struct {
	db *sql.DB
}

// NewLotRepository creates a new LotRepository with the provided database connection.
func NewLotRepository(db *sql.DB) *LotRepository {
	return &LotRepository{db: db}
}

// CreateLot inserts a new lot and returns it with its assigned ID.
func (r *LotRepository) CreateLot(lot model.Lot) (model.Lot, error) {
	query := `
		INSERT INTO portfolio_lot (coin_id, symbol, amount, buy_price, fee_buy_pct, fee_sell_pct, category, wallet, entry_kind)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		lot.CoinID,
		lot.Symbol,
		lot.Amount,
		lot.BuyPrice,
		lot.FeeBuyPct,
		lot.FeeSellPct,
		string(lot.Category),
		nullableString(lot.Wallet),
		string(lot.EntryKind),
	)
	if err != nil {
		return model.Lot{}, fmt.Errorf("failed to insert into portfolio_lot table: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Lot{}, fmt.Errorf("failed to read inserted lot ID: %w", err)
	}

	lot.ID = id
	return lot, nil
}

// GetLot retrieves a single lot by ID.
// Returns apperrors.ErrLotNotFound when no row matches.
func (r *LotRepository) GetLot(id int64) (model.Lot, error) {
	query := `
		SELECT id, coin_id, symbol, amount, buy_price, fee_buy_pct, fee_sell_pct, category, wallet, entry_kind
		FROM portfolio_lot
		WHERE id = ?
	`

	var lot model.Lot
	var category, entryKind string
	var wallet sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&lot.ID,
		&lot.CoinID,
		&lot.Symbol,
		&lot.Amount,
		&lot.BuyPrice,
		&lot.FeeBuyPct,
		&lot.FeeSellPct,
		&category,
		&wallet,
		&entryKind,
	)
	if err == sql.ErrNoRows {
		return model.Lot{}, apperrors.ErrLotNotFound
	}
	if err != nil {
		return model.Lot{}, fmt.Errorf("failed to scan portfolio_lot table results: %w", err)
	}

	lot.Category = model.Category(category)
	lot.Wallet = wallet.String
	lot.EntryKind = normalizeEntryKind(entryKind)

	return lot, nil
}

// UpdateLot replaces every stored field of the lot identified by lot.ID.
// Partial-edit merging is the service layer's responsibility; by the time an
// update reaches the repository it is a full-row replace.
// Returns apperrors.ErrLotNotFound when the ID does not exist.
func (r *LotRepository) UpdateLot(lot model.Lot) error {
	query := `
		UPDATE portfolio_lot
		SET coin_id = ?, symbol = ?, amount = ?, buy_price = ?, fee_buy_pct = ?, fee_sell_pct = ?, category = ?, wallet = ?, entry_kind = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		lot.CoinID,
		lot.Symbol,
		lot.Amount,
		lot.BuyPrice,
		lot.FeeBuyPct,
		lot.FeeSellPct,
		string(lot.Category),
		nullableString(lot.Wallet),
		string(lot.EntryKind),
		lot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio_lot table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLotNotFound
	}

	return nil
}

// DeleteLot removes the lot with the given ID.
// Returns apperrors.ErrLotNotFound when the ID does not exist; callers treat
// this as a report, not a failure. History rows are never touched.
func (r *LotRepository) DeleteLot(id int64) error {
	result, err := r.db.Exec(`DELETE FROM portfolio_lot WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from portfolio_lot table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLotNotFound
	}

	return nil
}

// ListLots retrieves all lots ordered by ID ascending (insertion order).
// No filtering is applied here; grouping and wallet filtering belong to the
// aggregation engine.
func (r *LotRepository) ListLots() ([]model.Lot, error) {
	query := `
		SELECT id, coin_id, symbol, amount, buy_price, fee_buy_pct, fee_sell_pct, category, wallet, entry_kind
		FROM portfolio_lot
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_lot table: %w", err)
	}
	defer rows.Close()

	lots := []model.Lot{}

	for rows.Next() {
		var lot model.Lot
		var category, entryKind string
		var wallet sql.NullString

		err := rows.Scan(
			&lot.ID,
			&lot.CoinID,
			&lot.Symbol,
			&lot.Amount,
			&lot.BuyPrice,
			&lot.FeeBuyPct,
			&lot.FeeSellPct,
			&category,
			&wallet,
			&entryKind,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_lot table results: %w", err)
		}

		lot.Category = model.Category(category)
		lot.Wallet = wallet.String
		lot.EntryKind = normalizeEntryKind(entryKind)

		lots = append(lots, lot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_lot table: %w", err)
	}

	return lots, nil
}

// ListWallets retrieves the distinct non-empty wallet labels in use.
func (r *LotRepository) ListWallets() ([]string, error) {
	query := `
		SELECT DISTINCT wallet
		FROM portfolio_lot
		WHERE wallet IS NOT NULL AND wallet != ''
		ORDER BY wallet ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_lot table: %w", err)
	}
	defer rows.Close()

	wallets := []string{}

	for rows.Next() {
		var wallet string
		if err := rows.Scan(&wallet); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_lot table results: %w", err)
		}
		wallets = append(wallets, wallet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_lot table: %w", err)
	}

	return wallets, nil
}

// normalizeEntryKind maps stored entry kinds onto the canonical values.
// Legacy rows predate the entry_kind column and may hold "" or "buy";
// both mean purchase.
func normalizeEntryKind(kind string) model.EntryKind {
	if model.EntryKind(kind) == model.EntryKindStaking {
		return model.EntryKindStaking
	}
	return model.EntryKindPurchase
}

// nullableString converts an empty string to NULL for optional columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
