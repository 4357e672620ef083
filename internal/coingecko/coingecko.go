package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client provides methods for fetching coin quotes from the CoinGecko API.
// It wraps an HTTP client with a bounded timeout so a slow upstream can never
// block an analysis run indefinitely. The client performs a single request
// per call: no retries and no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a new CoinGecko client.
//
// Parameters:
//   - baseURL: API root, e.g. "https://api.coingecko.com/api/v3".
//     Injectable so tests can point the client at a local server.
//   - timeout: hard bound on each request; 10s is the recommended value.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SetAPIKey configures an optional API key sent with every request.
// An empty key removes the header. Safe for concurrent use; the analysis
// pipeline refreshes the key on every run.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

// GetSimplePrices fetches current unit prices for a set of coin IDs in one
// batched call against the /simple/price endpoint.
//
// The returned map contains one entry per coin the API knows a price for;
// absent entries mean "no price available" and are not an error. Only a
// failure of the call as a whole (transport error, timeout, non-2xx status,
// malformed body) is returned as an error.
//
// Parameters:
//   - coinIDs: lowercase CoinGecko listing keys (e.g. "bitcoin")
//   - currency: reporting currency code (e.g. "cad")
func (c *Client) GetSimplePrices(ctx context.Context, coinIDs []string, currency string) (map[string]float64, error) {
	if len(coinIDs) == 0 {
		return map[string]float64{}, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(coinIDs, ","))
	params.Set("vs_currencies", currency)
	requestURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()
	if apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var response SimplePriceResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to decode coingecko response: %w", err)
	}

	prices := make(map[string]float64, len(response))
	for coinID, quotes := range response {
		if price, ok := quotes[currency]; ok {
			prices[coinID] = price
		}
	}

	return prices, nil
}
