// Package health provides health checking functionality for the service.
// Registered components report their own health and a single HTTP endpoint
// exposes the aggregate status.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"go.uber.org/zap"
)

type (
	// Healther is implemented by components that can report their
	// health. Implementations should answer quickly to avoid blocking
	// the endpoint.
	Healther interface {
		IsHealthy() bool
	}

	// component pairs a registered Healther with its display name.
	component struct {
		name     string
		healther Healther
	}

	// HealthChecker aggregates registered components and reports the
	// overall system health.
	HealthChecker struct {
		logger     *logger.Logger
		components []component
	}

	// status is the JSON body of one health response.
	status struct {
		OK         bool            `json:"ok"`
		Components map[string]bool `json:"components"`
	}
)

// NewHealthChecker creates an empty HealthChecker. Components are added
// with Register.
func NewHealthChecker(logger *logger.Logger) *HealthChecker {
	return &HealthChecker{
		logger: logger,
	}
}

// Register adds a named component to the aggregate check.
func (h *HealthChecker) Register(name string, healther Healther) {
	h.components = append(h.components, component{name: name, healther: healther})
}

// HealthCheck is the HTTP handler behind GET /health. It returns 200 with
// a per-component status body when every component is healthy, and 500
// otherwise.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	result := status{
		OK:         true,
		Components: make(map[string]bool, len(h.components)),
	}

	for _, c := range h.components {
		healthy := c.healther.IsHealthy()
		result.Components[c.name] = healthy

		if !healthy {
			result.OK = false
			h.logger.Error("health check failed",
				zap.String("component", c.name))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if result.OK {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("error encode health response", zap.Error(err))
	}
}

// StartHealthCheckServer starts a dedicated HTTP server for the health
// endpoint. This function blocks and should run in its own goroutine.
func (h *HealthChecker) StartHealthCheckServer(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.HealthCheck)

	h.logger.Info("Starting health check server", zap.String("port", port))

	if err := http.ListenAndServe(port, mux); err != nil {
		h.logger.Error("Failed to start health check server", zap.Error(err))
	}
}
