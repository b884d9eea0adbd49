package handler

import (
	"context"
	"net/http"
	"time"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/pkg/response"
)

// StartTime tracks when the server started for uptime calculation
var StartTime = time.Now()

const readyCheckTimeout = 2 * time.Second

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named backend checked by the readiness probe.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	deps    []Dependency
	log     logging.Logger
}

// NewHealthHandler creates a health handler checking deps on /ready.
func NewHealthHandler(version string, log logging.Logger, deps ...Dependency) *HealthHandler {
	return &HealthHandler{
		version: version,
		deps:    deps,
		log:     log.With("component", "health_handler"),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(StartTime).Seconds()),
	}
	w.Header().Set("Cache-Control", "no-store")
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	checks := []Check{{Name: "api", Status: "ok"}}
	allReady := true

	for _, dep := range h.deps {
		status := "ok"
		if err := dep.Pinger.Ping(ctx); err != nil {
			h.log.Warn(ctx, "readiness check failed", "dependency", dep.Name, "error", err)
			status = "unavailable"
			allReady = false
		}
		checks = append(checks, Check{Name: dep.Name, Status: status})
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	status := http.StatusOK
	if !allReady {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}
