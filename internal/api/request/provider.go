package request

// SaveProviderConfigRequest is the payload for updating the price provider
// settings. APIKey is write-only; reads expose only whether one is stored.
type SaveProviderConfigRequest struct {
	Currency string `json:"currency"`
	APIKey   string `json:"apiKey"`
}
