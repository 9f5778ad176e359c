package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	apperrors "retailetl/internal/errors"
)

// SummaryStats mirrors the order_summary view
type SummaryStats struct {
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	AvgProfitMargin decimal.Decimal `json:"avg_profit_margin"`
	FirstOrderDate  time.Time       `json:"first_order_date"`
	LastOrderDate   time.Time       `json:"last_order_date"`
}

// DimensionStats aggregates revenue and profit for one value of a
// grouping dimension (category, region, segment, ...)
type DimensionStats struct {
	Dimension       string          `json:"dimension"`
	Orders          int64           `json:"orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	Profit          decimal.Decimal `json:"profit"`
	AvgProfitMargin decimal.Decimal `json:"avg_profit_margin"`
}

// TrendPoint is one period of a revenue/profit time series
type TrendPoint struct {
	Year    int             `json:"year"`
	Period  int             `json:"period"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// groupableDimensions are the columns a caller may group by. Guarding the
// set keeps the dimension name safe to splice into SQL.
var groupableDimensions = map[string]struct{}{
	"category":     {},
	"sub_category": {},
	"region":       {},
	"segment":      {},
	"ship_mode":    {},
}

// Summary reads the headline stats from the order_summary view
func (s *Store) Summary(ctx context.Context) (*SummaryStats, error) {
	var stats SummaryStats
	err := s.db.WithContext(ctx).
		Raw(`SELECT total_orders, total_revenue, total_profit, avg_order_value,
		            avg_profit_margin, first_order_date, last_order_date
		     FROM order_summary`).
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read order_summary", err)
	}
	return &stats, nil
}

// DistinctValues returns the sorted distinct values of a groupable
// dimension column.
func (s *Store) DistinctValues(ctx context.Context, dimension string) ([]string, error) {
	if _, ok := groupableDimensions[dimension]; !ok {
		return nil, apperrors.NewValidationError("unknown dimension: " + dimension)
	}

	var values []string
	err := s.db.WithContext(ctx).
		Raw("SELECT DISTINCT " + dimension + " FROM orders WHERE " + dimension + " <> '' ORDER BY " + dimension).
		Scan(&values).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read distinct "+dimension, err)
	}
	return values, nil
}

// DateRange returns the first and last order dates in the store
func (s *Store) DateRange(ctx context.Context) (time.Time, time.Time, error) {
	var row struct {
		MinDate time.Time
		MaxDate time.Time
	}
	err := s.db.WithContext(ctx).
		Raw("SELECT MIN(order_date) AS min_date, MAX(order_date) AS max_date FROM orders").
		Scan(&row).Error
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewStorageError("failed to read order date range", err)
	}
	return row.MinDate, row.MaxDate, nil
}

// StatsByDimension aggregates orders, revenue, profit, and average margin
// grouped by the given dimension, highest revenue first. A zero year
// means no year filter.
func (s *Store) StatsByDimension(ctx context.Context, dimension string, year int) ([]DimensionStats, error) {
	if _, ok := groupableDimensions[dimension]; !ok {
		return nil, apperrors.NewValidationError("unknown dimension: " + dimension)
	}

	query := s.db.WithContext(ctx).
		Table("orders").
		Select(dimension + ` AS dimension,
			COUNT(*) AS orders,
			SUM(sale_price) AS revenue,
			SUM(profit) AS profit,
			ROUND(AVG(profit_margin)::numeric, 2) AS avg_profit_margin`).
		Group(dimension).
		Order("revenue DESC")
	if year > 0 {
		query = query.Where("year = ?", year)
	}

	var stats []DimensionStats
	if err := query.Scan(&stats).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to aggregate by "+dimension, err)
	}
	return stats, nil
}

// MonthlyTrend returns the month-by-month revenue/profit series
func (s *Store) MonthlyTrend(ctx context.Context, year int) ([]TrendPoint, error) {
	return s.trend(ctx, "month", year)
}

// QuarterlyTrend returns the quarter-by-quarter revenue/profit series
func (s *Store) QuarterlyTrend(ctx context.Context, year int) ([]TrendPoint, error) {
	return s.trend(ctx, "quarter", year)
}

func (s *Store) trend(ctx context.Context, period string, year int) ([]TrendPoint, error) {
	query := s.db.WithContext(ctx).
		Table("orders").
		Select(`year,
			` + period + ` AS period,
			COUNT(*) AS orders,
			SUM(sale_price) AS revenue,
			SUM(profit) AS profit`).
		Group("year, " + period).
		Order("year, " + period)
	if year > 0 {
		query = query.Where("year = ?", year)
	}

	var points []TrendPoint
	if err := query.Scan(&points).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to compute "+period+" trend", err)
	}
	return points, nil
}
