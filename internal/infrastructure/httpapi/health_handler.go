package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether one backend is reachable.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Backends  map[string]string `json:"backends"`
}

// HealthHandler reports service liveness and backend reachability.
type HealthHandler struct {
	pingers []Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(pingers []Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pingers: pingers, logger: logger}
}

// Check handles GET /api/health. Unreachable backends degrade the status but
// never fail the endpoint; the fallback chain can still serve reads.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	backends := make(map[string]string, len(h.pingers))
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			backends[p.Name()] = "unreachable"
			status = "degraded"
			continue
		}
		backends[p.Name()] = "ok"
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Service:   "businessbites",
		Timestamp: time.Now().UTC(),
		Backends:  backends,
	})
}
