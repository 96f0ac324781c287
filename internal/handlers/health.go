package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/order-intake/internal/config"
)

// Version is reported by the health endpoint
var Version = "dev"

// EmailChecker reports the current email settings
type EmailChecker interface {
	Email() (config.Email, error)
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	email  EmailChecker
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(email EmailChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		email:  email,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests.
// The service stays healthy without email settings; orders are refused until they exist.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Email:     "configured",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}

	cfg, err := h.email.Email()
	if err != nil || !cfg.Configured() {
		response.Email = "not_configured"
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
