package services

import (
	"context"
	"log/slog"
	"time"

	"retailetl/internal/store"
)

// queryTimeout bounds every reporting query issued on behalf of a request
const queryTimeout = 10 * time.Second

// ReportService serves the read-only aggregation queries behind the
// dashboard pages. All data comes from the orders table and the
// order_summary view populated by the seeder.
type ReportService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewReportService creates a report service backed by the orders store
func NewReportService(st *store.Store, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  st,
		logger: logger.With(slog.String("service", "report")),
	}
}

// Summary returns the headline stats from the order_summary view
func (s *ReportService) Summary(ctx context.Context) (*store.SummaryStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats, err := s.store.Summary(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "summary query failed", slog.String("error", err.Error()))
		return nil, err
	}
	return stats, nil
}

// Dimension returns the distinct values of a groupable dimension
func (s *ReportService) Dimension(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	values, err := s.store.DistinctValues(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "dimension query failed",
			slog.String("dimension", name),
			slog.String("error", err.Error()))
		return nil, err
	}
	return values, nil
}

// DateRange returns the first and last order dates in the store
func (s *ReportService) DateRange(ctx context.Context) (time.Time, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.store.DateRange(ctx)
}

// StatsBy aggregates revenue and profit by the given dimension,
// optionally filtered to one year.
func (s *ReportService) StatsBy(ctx context.Context, dimension string, year int) ([]store.DimensionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats, err := s.store.StatsByDimension(ctx, dimension, year)
	if err != nil {
		s.logger.ErrorContext(ctx, "dimension stats query failed",
			slog.String("dimension", dimension),
			slog.Int("year", year),
			slog.String("error", err.Error()))
		return nil, err
	}
	return stats, nil
}

// MonthlyTrend returns the monthly revenue/profit series
func (s *ReportService) MonthlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.store.MonthlyTrend(ctx, year)
}

// QuarterlyTrend returns the quarterly revenue/profit series
func (s *ReportService) QuarterlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.store.QuarterlyTrend(ctx, year)
}

// Health reports whether the orders store is reachable
func (s *ReportService) Health(ctx context.Context) error {
	return s.store.Ping()
}
