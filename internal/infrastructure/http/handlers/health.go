package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthChecker reports readiness of a backing dependency
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandlers handles liveness and readiness probes
type HealthHandlers struct {
	version  string
	database HealthChecker
	logger   *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(version string, database HealthChecker, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		version:  version,
		database: database,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if h.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.database.HealthCheck(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, h.logger, code, APIResponse{
		Success: code == http.StatusOK,
		Data: map[string]interface{}{
			"status":    status,
			"version":   h.version,
			"timestamp": time.Now().Unix(),
		},
	})
}
