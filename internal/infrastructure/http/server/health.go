package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthChecker is a component that can report its health
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler serves /health
type HealthHandler struct {
	checkers []HealthChecker
	logger   zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(logger zerolog.Logger, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers, logger: logger}
}

// Handle implements fasthttp.RequestHandler
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:     HealthStatusHealthy,
		Timestamp:  time.Now().UTC(),
		Components: make([]ComponentHealth, 0, len(h.checkers)),
	}

	for _, checker := range h.checkers {
		component := ComponentHealth{Name: checker.Name(), Healthy: true}
		if err := checker.HealthCheck(checkCtx); err != nil {
			component.Healthy = false
			component.Message = err.Error()
			response.Status = HealthStatusUnhealthy
		}
		response.Components = append(response.Components, component)
	}

	statusCode := fasthttp.StatusOK
	if response.Status == HealthStatusUnhealthy {
		statusCode = fasthttp.StatusServiceUnavailable
		h.logger.Warn().Interface("components", response.Components).Msg("Health check failed")
	}

	body, err := json.Marshal(response)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)
	ctx.SetBody(body)
}

// DirChecker reports whether a working directory exists
type DirChecker struct {
	name string
	dir  string
}

// NewDirChecker creates a checker for dir
func NewDirChecker(name, dir string) *DirChecker {
	return &DirChecker{name: name, dir: dir}
}

// Name implements HealthChecker interface
func (c *DirChecker) Name() string { return c.name }

// HealthCheck implements HealthChecker interface
func (c *DirChecker) HealthCheck(context.Context) error {
	info, err := os.Stat(c.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.dir)
	}
	return nil
}
