package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/order-intake/internal/config"
	"github.com/Lixing-Zhang/order-intake/pkg/logger"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.Email
		expectedEmail string
	}{
		{name: "configured", cfg: testEmailConfig(), expectedEmail: "configured"},
		{name: "missing settings", cfg: config.Email{Provider: config.ProviderSMTP}, expectedEmail: "not_configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(fakeEmailSource{cfg: tt.cfg}, logger.NewWithWriter(io.Discard, "info", "json"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != "healthy" {
				t.Errorf("expected healthy, got %q", resp.Status)
			}
			if resp.Email != tt.expectedEmail {
				t.Errorf("expected email %q, got %q", tt.expectedEmail, resp.Email)
			}
		})
	}
}
