package testutil

import (
	"context"
	"sync"
)

// MockPriceSource is a test implementation of the analysis service's price
// source. It records every call and returns predefined prices or an error.
type MockPriceSource struct {
	mu sync.Mutex

	// Prices is the mapping returned from GetSimplePrices.
	Prices map[string]float64
	// Err is returned from GetSimplePrices when set.
	Err error
	// CallCount tracks how many lookups were made.
	CallCount int
	// LastCoinIDs holds the coin IDs of the most recent lookup.
	LastCoinIDs []string
	// LastCurrency holds the currency of the most recent lookup.
	LastCurrency string
	// APIKey holds the most recently applied API key.
	APIKey string
}

// NewMockPriceSource creates a mock returning the given prices.
func NewMockPriceSource(prices map[string]float64) *MockPriceSource {
	return &MockPriceSource{Prices: prices}
}

// WithError configures the mock to fail every lookup with err.
func (m *MockPriceSource) WithError(err error) *MockPriceSource {
	m.Err = err
	return m
}

// SetAPIKey records the applied API key.
func (m *MockPriceSource) SetAPIKey(key string) {
	m.mu.Lock()
	m.APIKey = key
	m.mu.Unlock()
}

// GetSimplePrices returns the configured prices or error and records the call.
func (m *MockPriceSource) GetSimplePrices(_ context.Context, coinIDs []string, currency string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastCoinIDs = append([]string(nil), coinIDs...)
	m.LastCurrency = currency

	if m.Err != nil {
		return nil, m.Err
	}

	prices := make(map[string]float64, len(m.Prices))
	for coinID, price := range m.Prices {
		prices[coinID] = price
	}
	return prices, nil
}
