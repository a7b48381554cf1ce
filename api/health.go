package api

import (
	"context"
	"time"

	"backend-service/buildinfo"
	"backend-service/domain"

	"github.com/gofiber/fiber/v2"
)

const checkTimeout = 3 * time.Second

var _ HealthHandler = &healthHandler{}

type healthHandler struct {
	checks []domain.DependencyCheck
	ready  domain.ReadinessReporter
}

// NewHealthHandler returns the health endpoints backed by the given dependency probes
func NewHealthHandler(checks []domain.DependencyCheck, ready domain.ReadinessReporter) HealthHandler {
	return &healthHandler{checks: checks, ready: ready}
}

// Health handles the /health endpoint
// @Summary Health check endpoint
// @Description Check the health status of the service and its configured dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse "Service is healthy"
// @Success 503 {object} domain.HealthResponse "Service is unhealthy"
// @Router /health [get]
func (h *healthHandler) Health(c *fiber.Ctx) error {
	response, healthy := h.runChecks()
	if healthy {
		response.Status = domain.StatusHealthy
		return c.Status(fiber.StatusOK).JSON(response)
	}

	response.Status = domain.StatusUnhealthy
	return c.Status(fiber.StatusServiceUnavailable).JSON(response)
}

// Live handles the /health/live endpoint
// @Summary Liveness probe
// @Description Reports that the process is running
// @Tags Health
// @Produce json
// @Success 200 {object} domain.LiveResponse "Process is live"
// @Router /health/live [get]
func (h *healthHandler) Live(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(domain.LiveResponse{
		Status:    domain.StatusLive,
		Timestamp: time.Now().UTC(),
		Uptime:    buildinfo.Uptime().Round(time.Second).String(),
	})
}

// Ready handles the /health/ready endpoint
// @Summary Readiness probe
// @Description Reports whether the server is accepting traffic and its dependencies are reachable
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse "Service is ready"
// @Success 503 {object} domain.HealthResponse "Service is initializing or unhealthy"
// @Router /health/ready [get]
func (h *healthHandler) Ready(c *fiber.Ctx) error {
	if h.ready == nil || !h.ready.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(domain.HealthResponse{
			Status:    domain.StatusInitializing,
			Timestamp: time.Now().UTC(),
			BuildInfo: buildinfo.GetInfo(),
			Services:  map[string]domain.ServiceStatus{},
		})
	}

	response, healthy := h.runChecks()
	if healthy {
		response.Status = domain.StatusReady
		return c.Status(fiber.StatusOK).JSON(response)
	}

	response.Status = domain.StatusUnhealthy
	return c.Status(fiber.StatusServiceUnavailable).JSON(response)
}

func (h *healthHandler) runChecks() (domain.HealthResponse, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	response := domain.HealthResponse{
		Timestamp: time.Now().UTC(),
		BuildInfo: buildinfo.GetInfo(),
		Services:  make(map[string]domain.ServiceStatus, len(h.checks)),
	}

	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			healthy = false
			response.Services[check.Name] = domain.ServiceStatus{
				Status:  domain.StatusUnhealthy,
				Message: err.Error(),
			}
			continue
		}
		response.Services[check.Name] = domain.ServiceStatus{Status: domain.StatusHealthy}
	}
	return response, healthy
}
