package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ProviderConfigRepository provides data access methods for the
// provider_config table. The table holds at most one row; the stored API key
// is encrypted by the service layer before it reaches the repository.
type ProviderConfigRepository struct {
	db *sql.DB
}

// NewProviderConfigRepository creates a new ProviderConfigRepository with the provided database connection.
func NewProviderConfigRepository(db *sql.DB) *ProviderConfigRepository {
	return &ProviderConfigRepository{db: db}
}

// GetConfig retrieves the stored provider configuration.
// Returns apperrors.ErrProviderConfigNotFound when none has been saved yet.
// The APIKey field carries the encrypted token as stored.
func (r *ProviderConfigRepository) GetConfig() (model.ProviderConfig, error) {
	query := `
		SELECT id, currency, api_key_encrypted, updated_at
		FROM provider_config
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg model.ProviderConfig
	var apiKey sql.NullString
	var updatedAtStr string

	err := r.db.QueryRow(query).Scan(&cfg.ID, &cfg.Currency, &apiKey, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.ProviderConfig{}, apperrors.ErrProviderConfigNotFound
	}
	if err != nil {
		return model.ProviderConfig{}, fmt.Errorf("failed to scan provider_config table results: %w", err)
	}

	cfg.APIKey = apiKey.String
	cfg.HasAPIKey = apiKey.Valid && apiKey.String != ""
	cfg.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.ProviderConfig{}, err
	}

	return cfg, nil
}

// SaveConfig replaces the stored provider configuration.
// The table keeps a single row; saving deletes any previous configuration.
func (r *ProviderConfigRepository) SaveConfig(cfg model.ProviderConfig) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin provider_config update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM provider_config`); err != nil {
		return fmt.Errorf("failed to clear provider_config table: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO provider_config (id, currency, api_key_encrypted, updated_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(),
		cfg.Currency,
		nullableString(cfg.APIKey),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into provider_config table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit provider_config update: %w", err)
	}

	return nil
}
