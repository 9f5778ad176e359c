package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retailetl/internal/config"
	apierrors "retailetl/internal/errors"
	"retailetl/internal/middleware"
)

// NewRouter assembles the reporting server's routes and middleware chain
func NewRouter(cfg *config.Config, service ReportServiceInterface, logger *slog.Logger) chi.Router {
	errorHandler := apierrors.NewErrorHandler(logger)
	reportHandler := NewReportHandler(service, logger, errorHandler)
	healthHandler := NewHealthHandler(service, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst))
	}

	r.Get("/healthz", healthHandler.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api", reportHandler.Routes())

	return r
}
