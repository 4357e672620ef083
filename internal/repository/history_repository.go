package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// HistoryRepository provides data access methods for the analysis_history
// table. The table is append-only: rows are written once per analysis run
// and never mutated or deleted by the application.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the provided database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// AppendSnapshot writes one history row per aggregate row inside a single
// transaction, so a snapshot is committed in full or not at all. All rows
// share one timestamp captured at the start of the call, which attributes a
// multi-coin snapshot to one analysis run. The coin ID is stored lowercase
// for stable joins against future price lookups; the symbol is stored
// as-given.
//
// Returns the shared timestamp of the written snapshot.
func (r *HistoryRepository) AppendSnapshot(rows []model.AggregateRow) (time.Time, error) {
	timestamp := time.Now().UTC()

	if len(rows) == 0 {
		return timestamp, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrHistoryWriteFailed, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO analysis_history (id, timestamp, coin_id, symbol, wallet, current_price, current_value_net, pct_change_net)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, row := range rows {
		_, err := tx.Exec(query,
			uuid.NewString(),
			timestamp.Format(time.RFC3339),
			strings.ToLower(row.CoinID),
			row.Symbol,
			nullableString(row.Wallet),
			row.CurrentPrice,
			row.CurrentValueNet,
			row.PctChangeNet,
		)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrHistoryWriteFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrHistoryWriteFailed, err)
	}

	return timestamp, nil
}

// GetHistoryBySymbol retrieves the snapshot time series for one symbol,
// ordered by timestamp ascending.
func (r *HistoryRepository) GetHistoryBySymbol(symbol string) ([]model.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, coin_id, symbol, wallet, current_price, current_value_net, pct_change_net
		FROM analysis_history
		WHERE symbol = ?
		ORDER BY timestamp ASC
	`

	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis_history table: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}

	for rows.Next() {
		var entry model.HistoryEntry
		var timestampStr string
		var wallet sql.NullString

		err := rows.Scan(
			&entry.ID,
			&timestampStr,
			&entry.CoinID,
			&entry.Symbol,
			&wallet,
			&entry.CurrentPrice,
			&entry.CurrentValueNet,
			&entry.PctChangeNet,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis_history table results: %w", err)
		}

		entry.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		entry.Wallet = wallet.String

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis_history table: %w", err)
	}

	return entries, nil
}

// ListSymbols retrieves the distinct symbols present in the history,
// ordered by first appearance.
func (r *HistoryRepository) ListSymbols() ([]string, error) {
	query := `
		SELECT symbol
		FROM analysis_history
		GROUP BY symbol
		ORDER BY MIN(timestamp) ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis_history table: %w", err)
	}
	defer rows.Close()

	symbols := []string{}

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan analysis_history table results: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis_history table: %w", err)
	}

	return symbols, nil
}

// CountEntries returns the number of history rows written with the given
// timestamp. Used by callers to verify snapshot completeness.
func (r *HistoryRepository) CountEntries(timestamp time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM analysis_history WHERE timestamp = ?`,
		timestamp.Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analysis_history rows: %w", err)
	}
	return count, nil
}
