package domain

import (
	"backend-service/buildinfo"
	"time"
)

const (
	StatusHealthy      = "healthy"
	StatusUnhealthy    = "unhealthy"
	StatusLive         = "live"
	StatusReady        = "ready"
	StatusInitializing = "initializing"
)

// HealthResponse represents the health status of the service
type HealthResponse struct {
	Status    string                   `json:"status" example:"healthy"`
	Timestamp time.Time                `json:"timestamp" example:"2025-11-22T10:00:00Z"`
	BuildInfo buildinfo.Info           `json:"buildInfo"`
	Services  map[string]ServiceStatus `json:"services"`
}

// ServiceStatus represents the status of a single service
type ServiceStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:""`
}

// LiveResponse is returned by the liveness probe
type LiveResponse struct {
	Status    string    `json:"status" example:"live"`
	Timestamp time.Time `json:"timestamp" example:"2025-11-22T10:00:00Z"`
	Uptime    string    `json:"uptime" example:"1h2m3s"`
}

// ErrorResponse is the body of every error produced by the HTTP layer
type ErrorResponse struct {
	Error string `json:"error" example:"Cannot GET /missing"`
}
