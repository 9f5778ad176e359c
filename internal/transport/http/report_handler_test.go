package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "retailetl/internal/errors"
	"retailetl/internal/store"
)

// stubReportService returns canned values so handler behavior can be
// tested without a database.
type stubReportService struct {
	summary     *store.SummaryStats
	dimensions  map[string][]string
	first, last time.Time
	stats       []store.DimensionStats
	trend       []store.TrendPoint
	err         error
}

func (s *stubReportService) Summary(ctx context.Context) (*store.SummaryStats, error) {
	return s.summary, s.err
}

func (s *stubReportService) Dimension(ctx context.Context, name string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	values, ok := s.dimensions[name]
	if !ok {
		return nil, apierrors.NewValidationError("unknown dimension: " + name)
	}
	return values, nil
}

func (s *stubReportService) DateRange(ctx context.Context) (time.Time, time.Time, error) {
	return s.first, s.last, s.err
}

func (s *stubReportService) StatsBy(ctx context.Context, dimension string, year int) ([]store.DimensionStats, error) {
	return s.stats, s.err
}

func (s *stubReportService) MonthlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error) {
	return s.trend, s.err
}

func (s *stubReportService) QuarterlyTrend(ctx context.Context, year int) ([]store.TrendPoint, error) {
	return s.trend, s.err
}

func (s *stubReportService) Health(ctx context.Context) error {
	return s.err
}

func newTestHandler(service ReportServiceInterface) *ReportHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReportHandler(service, logger, apierrors.NewErrorHandler(logger))
}

func doRequest(t *testing.T, h *ReportHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestGetSummary(t *testing.T) {
	service := &stubReportService{
		summary: &store.SummaryStats{
			TotalOrders:  5,
			TotalRevenue: decimal.RequireFromString("1096.7"),
			TotalProfit:  decimal.RequireFromString("120.85"),
		},
	}
	rec := doRequest(t, newTestHandler(service), "/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got store.SummaryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(5), got.TotalOrders)
	assert.True(t, got.TotalRevenue.Equal(decimal.RequireFromString("1096.7")))
}

func TestGetSummary_StorageError(t *testing.T) {
	service := &stubReportService{
		err: apierrors.NewStorageError("query summary", io.ErrUnexpectedEOF),
	}
	rec := doRequest(t, newTestHandler(service), "/summary")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DATABASE_UNAVAILABLE", resp.Error.ErrorCode)
}

func TestGetDateRange(t *testing.T) {
	service := &stubReportService{
		first: time.Date(2022, 6, 18, 0, 0, 0, 0, time.UTC),
		last:  time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	rec := doRequest(t, newTestHandler(service), "/date-range")

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2022-06-18", got["first_order_date"])
	assert.Equal(t, "2023-08-15", got["last_order_date"])
}

func TestGetDimension(t *testing.T) {
	service := &stubReportService{
		dimensions: map[string][]string{
			"region": {"Central", "East", "South", "West"},
		},
	}
	rec := doRequest(t, newTestHandler(service), "/dimensions/region")

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Dimension string   `json:"dimension"`
		Values    []string `json:"values"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "region", got.Dimension)
	assert.Equal(t, []string{"Central", "East", "South", "West"}, got.Values)
}

func TestGetDimension_Unknown(t *testing.T) {
	service := &stubReportService{dimensions: map[string][]string{}}
	rec := doRequest(t, newTestHandler(service), "/dimensions/order_id")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.ErrorCode)
}

func TestGetStatsByDimension(t *testing.T) {
	service := &stubReportService{
		stats: []store.DimensionStats{
			{Dimension: "Technology", Orders: 3, Revenue: decimal.RequireFromString("819.6")},
			{Dimension: "Furniture", Orders: 2, Revenue: decimal.RequireFromString("277.1")},
		},
	}
	rec := doRequest(t, newTestHandler(service), "/stats/category?year=2023")

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Dimension string                 `json:"dimension"`
		Year      int                    `json:"year"`
		Stats     []store.DimensionStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "category", got.Dimension)
	assert.Equal(t, 2023, got.Year)
	require.Len(t, got.Stats, 2)
	assert.Equal(t, "Technology", got.Stats[0].Dimension)
}

func TestYearParam(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "no year means no filter", path: "/trends/monthly", wantCode: http.StatusOK},
		{name: "valid year", path: "/trends/monthly?year=2023", wantCode: http.StatusOK},
		{name: "non numeric year", path: "/trends/monthly?year=latest", wantCode: http.StatusBadRequest},
		{name: "year too small", path: "/trends/monthly?year=99", wantCode: http.StatusBadRequest},
		{name: "year too large", path: "/trends/monthly?year=10000", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubReportService{trend: []store.TrendPoint{}}
			rec := doRequest(t, newTestHandler(service), tt.path)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusBadRequest {
				var resp apierrors.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "VALIDATION_FAILED", resp.Error.ErrorCode)
			}
		})
	}
}

func TestGetQuarterlyTrend(t *testing.T) {
	service := &stubReportService{
		trend: []store.TrendPoint{
			{Year: 2023, Period: 1, Orders: 2, Revenue: decimal.RequireFromString("531.25")},
			{Year: 2023, Period: 3, Orders: 1, Revenue: decimal.RequireFromString("254.8")},
		},
	}
	rec := doRequest(t, newTestHandler(service), "/trends/quarterly?year=2023")

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Year   int               `json:"year"`
		Points []store.TrendPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2023, got.Year)
	require.Len(t, got.Points, 2)
	assert.Equal(t, 3, got.Points[1].Period)
}
