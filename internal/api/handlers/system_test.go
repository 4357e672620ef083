package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
	"github.com/cryptofolio/Crypto-Portfolio-Tracker-Backend/internal/version"
)

func TestSystemHandler(t *testing.T) {
	t.Run("health reports a connected database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var resp handlers.HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Status != "healthy" || resp.Database != "connected" {
			t.Errorf("Unexpected health response: %+v", resp)
		}
	})

	t.Run("health reports a closed database as unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", rec.Code)
		}
	})

	t.Run("version returns the application version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		rec := httptest.NewRecorder()
		handler.Version(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var resp handlers.VersionResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.AppVersion != version.Version {
			t.Errorf("Expected version %s, got %s", version.Version, resp.AppVersion)
		}
	})
}
