package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/go-chi/chi/v5"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func newProviderRouter(t *testing.T, encryptionKey string) *chi.Mux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc, err := service.NewProviderService(repository.NewProviderConfigRepository(db), encryptionKey)
	if err != nil {
		t.Fatalf("Failed to build provider service: %v", err)
	}
	handler := handlers.NewProviderHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/provider/config", handler.GetConfig)
	r.Put("/api/provider/config", handler.SaveConfig)

	return r
}

func testEncryptionKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate encryption key: %v", err)
	}
	return key.Encode()
}

func TestProviderHandler(t *testing.T) {
	t.Run("no stored configuration returns 404", func(t *testing.T) {
		router := newProviderRouter(t, "")

		req := httptest.NewRequest(http.MethodGet, "/api/provider/config", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})

	t.Run("save then read round-trips without exposing the key", func(t *testing.T) {
		router := newProviderRouter(t, testEncryptionKey(t))

		body := `{"currency":"EUR","apiKey":"cg-demo-key"}`
		req := httptest.NewRequest(http.MethodPut, "/api/provider/config", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		req = httptest.NewRequest(http.MethodGet, "/api/provider/config", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		raw := rec.Body.Bytes()

		var cfg model.ProviderConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if cfg.Currency != "eur" {
			t.Errorf("Expected lowercased currency eur, got %s", cfg.Currency)
		}
		if !cfg.HasAPIKey {
			t.Error("Expected HasAPIKey to be true")
		}
		if bytes.Contains(raw, []byte("cg-demo-key")) {
			t.Error("Expected the API key to never appear in a response")
		}
	})

	t.Run("storing a key without encryption configured returns 409", func(t *testing.T) {
		router := newProviderRouter(t, "")

		body := `{"currency":"cad","apiKey":"secret"}`
		req := httptest.NewRequest(http.MethodPut, "/api/provider/config", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("blank currency returns 400", func(t *testing.T) {
		router := newProviderRouter(t, "")

		req := httptest.NewRequest(http.MethodPut, "/api/provider/config", bytes.NewBufferString(`{"currency":""}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}
