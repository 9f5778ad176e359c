package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// ReportHandler serves the reporting API consumed by the dashboard
type ReportHandler struct {
	service      ReportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the reporting routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/date-range", h.GetDateRange)
	r.Get("/dimensions/{dimension}", h.GetDimension)
	r.Get("/stats/{dimension}", h.GetStatsByDimension)
	r.Get("/trends/monthly", h.GetMonthlyTrend)
	r.Get("/trends/quarterly", h.GetQuarterlyTrend)

	return r
}

// GetSummary handles GET /api/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// GetDateRange handles GET /api/date-range
func (h *ReportHandler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	first, last, err := h.service.DateRange(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{
		"first_order_date": first.Format(domain.DateLayout),
		"last_order_date":  last.Format(domain.DateLayout),
	})
}

// GetDimension handles GET /api/dimensions/{dimension}
func (h *ReportHandler) GetDimension(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")
	values, err := h.service.Dimension(r.Context(), dimension)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"dimension": dimension,
		"values":    values,
	})
}

// GetStatsByDimension handles GET /api/stats/{dimension}?year=YYYY
func (h *ReportHandler) GetStatsByDimension(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	stats, err := h.service.StatsBy(r.Context(), dimension, year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"dimension": dimension,
		"year":      year,
		"stats":     stats,
	})
}

// GetMonthlyTrend handles GET /api/trends/monthly?year=YYYY
func (h *ReportHandler) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	points, err := h.service.MonthlyTrend(r.Context(), year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"year": year, "points": points})
}

// GetQuarterlyTrend handles GET /api/trends/quarterly?year=YYYY
func (h *ReportHandler) GetQuarterlyTrend(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	points, err := h.service.QuarterlyTrend(r.Context(), year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"year": year, "points": points})
}

// yearParam parses the optional year query parameter; 0 means no filter
func (h *ReportHandler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidationField("year", "must be a four-digit year"))
		return 0, false
	}
	return year, true
}
