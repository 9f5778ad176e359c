package http

import (
	"context"
	"time"

	"retailetl/internal/store"
)

// ReportServiceInterface defines what the handlers need from the report
// service. Kept here so handler tests can stub it.
type ReportServiceInterface interface {
	Summary(ctx context.Context) (*store.SummaryStats, error)
	Dimension(ctx context.Context, name string) ([]string, error)
	DateRange(ctx context.Context) (time.Time, time.Time, error)
	StatsBy(ctx context.Context, dimension string, year int) ([]store.DimensionStats, error)
	MonthlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error)
	QuarterlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error)
	Health(ctx context.Context) error
}
