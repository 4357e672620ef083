package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// ProviderService manages the stored price provider settings: the reporting
// currency override and an optional API key. The key is encrypted with a
// fernet key before it is persisted and decrypted on read; it never leaves
// the process in plaintext through the API.
type ProviderService struct {
	configRepo    *repository.ProviderConfigRepository
	encryptionKey *fernet.Key
}

// NewProviderService creates a new ProviderService. encryptionKey is a
// base64-encoded fernet key; when empty, configurations without an API key
// can still be stored and read.
func NewProviderService(configRepo *repository.ProviderConfigRepository, encryptionKey string) (*ProviderService, error) {
	s := &ProviderService{configRepo: configRepo}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode settings encryption key: %w", err)
		}
		s.encryptionKey = key
	}

	return s, nil
}

// GetConfig returns the stored provider configuration with the API key
// redacted (only HasAPIKey is exposed).
func (s *ProviderService) GetConfig() (model.ProviderConfig, error) {
	cfg, err := s.configRepo.GetConfig()
	if err != nil {
		return model.ProviderConfig{}, err
	}
	cfg.APIKey = ""
	return cfg, nil
}

// GetAPIKey returns the decrypted stored API key, or an empty string when
// none is configured.
func (s *ProviderService) GetAPIKey() (string, error) {
	cfg, err := s.configRepo.GetConfig()
	if errors.Is(err, apperrors.ErrProviderConfigNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if cfg.APIKey == "" {
		return "", nil
	}
	if s.encryptionKey == nil {
		return "", apperrors.ErrEncryptionUnavailable
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(cfg.APIKey), 0, []*fernet.Key{s.encryptionKey})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt stored API key")
	}
	return string(plaintext), nil
}

// PricingOverride returns the stored reporting currency and decrypted API
// key for the price lookup. Both come back empty when no configuration has
// been saved; the caller falls back to its environment defaults.
func (s *ProviderService) PricingOverride() (currency, apiKey string, err error) {
	cfg, err := s.configRepo.GetConfig()
	if errors.Is(err, apperrors.ErrProviderConfigNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}

	apiKey, err = s.GetAPIKey()
	if err != nil {
		return "", "", err
	}

	return cfg.Currency, apiKey, nil
}

// SaveConfig validates and stores the provider configuration. A non-empty
// API key requires an encryption key to be configured.
func (s *ProviderService) SaveConfig(currency, apiKey string) (model.ProviderConfig, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return model.ProviderConfig{}, apperrors.ErrInvalidCurrency
	}

	cfg := model.ProviderConfig{Currency: currency}

	if apiKey != "" {
		if s.encryptionKey == nil {
			return model.ProviderConfig{}, apperrors.ErrEncryptionUnavailable
		}
		encrypted, err := fernet.EncryptAndSign([]byte(apiKey), s.encryptionKey)
		if err != nil {
			return model.ProviderConfig{}, fmt.Errorf("failed to encrypt API key: %w", err)
		}
		cfg.APIKey = string(encrypted)
		cfg.HasAPIKey = true
	}

	if err := s.configRepo.SaveConfig(cfg); err != nil {
		return model.ProviderConfig{}, err
	}

	return s.GetConfig()
}
