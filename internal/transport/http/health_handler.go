package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"retailetl/pkg/contracts"
)

// HealthHandler reports liveness and store connectivity
type HealthHandler struct {
	service ReportServiceInterface
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service ReportServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.service.Health(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "health check failed", slog.String("error", err.Error()))
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	render.Status(r, httpStatus)
	render.JSON(w, r, map[string]string{
		"status":  status,
		"version": contracts.Version,
	})
}
