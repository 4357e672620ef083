package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A second pooled connection would get its own empty in-memory database,
	// so the pool is pinned to a single connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Portfolio lot table
		CREATE TABLE IF NOT EXISTS portfolio_lot (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			coin_id VARCHAR(100) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			amount FLOAT NOT NULL DEFAULT 0,
			buy_price FLOAT NOT NULL DEFAULT 0,
			fee_buy_pct FLOAT NOT NULL DEFAULT 0,
			fee_sell_pct FLOAT NOT NULL DEFAULT 0,
			category VARCHAR(10) NOT NULL DEFAULT 'classic',
			wallet VARCHAR(100),
			entry_kind VARCHAR(10) NOT NULL DEFAULT 'purchase',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Analysis history table (append-only)
		CREATE TABLE IF NOT EXISTS analysis_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			coin_id VARCHAR(100) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			wallet VARCHAR(100),
			current_price FLOAT NOT NULL,
			current_value_net FLOAT NOT NULL,
			pct_change_net FLOAT NOT NULL
		);

		-- Provider configuration table
		CREATE TABLE IF NOT EXISTS provider_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			currency VARCHAR(10) NOT NULL,
			api_key_encrypted VARCHAR(500),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS ix_portfolio_lot_coin_id ON portfolio_lot(coin_id);
		CREATE INDEX IF NOT EXISTS ix_portfolio_lot_wallet ON portfolio_lot(wallet);
		CREATE INDEX IF NOT EXISTS ix_analysis_history_timestamp ON analysis_history(timestamp);
		CREATE INDEX IF NOT EXISTS ix_analysis_history_coin_id ON analysis_history(coin_id);
		CREATE INDEX IF NOT EXISTS ix_analysis_history_symbol ON analysis_history(symbol);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"analysis_history",
		"portfolio_lot",
		"provider_config",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
