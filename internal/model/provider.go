package model

import "time"

// ProviderConfig holds the stored price provider settings. APIKey is kept
// encrypted at rest and is never returned through the API; responses expose
// HasAPIKey instead.
type ProviderConfig struct {
	ID        string    `json:"-"`
	Currency  string    `json:"currency"`
	APIKey    string    `json:"-"`
	HasAPIKey bool      `json:"hasApiKey"`
	UpdatedAt time.Time `json:"updatedAt"`
}
