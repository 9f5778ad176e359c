package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"retailetl/pkg/contracts/domain"
)

// Result carries the in-memory outcome of a pipeline run. The orders are
// returned even when the final write fails, so callers can inspect the
// computed table without re-reading the file.
type Result struct {
	Orders  []domain.Order
	Summary Summary
}

// Pipeline runs the cleaning job end to end
type Pipeline struct {
	logger *slog.Logger
}

// New creates a pipeline with the given logger
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With(slog.String("component", "pipeline"))}
}

// Run executes ingestion, normalization, derivation, categorical cleaning,
// and export in order. Each stage consumes its whole input before the next
// starts; cancellation is honored at stage boundaries only, never
// mid-stage. On export failure the computed result is still returned
// alongside the error.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(slog.String("run_id", runID))

	logger.InfoContext(ctx, "starting cleaning run",
		slog.String("input", inputPath),
		slog.String("output", outputPath))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := LoadRaw(inputPath)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.InfoContext(ctx, "ingested raw extract",
		slog.Int("rows", raw.RowCount()),
		slog.Int("columns", len(raw.Headers)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orders, err := Normalize(raw)
	if err != nil {
		logger.ErrorContext(ctx, "normalization failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orders = DeriveAll(orders)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orders = CleanCategoricals(orders)

	result := &Result{
		Orders:  orders,
		Summary: summarize(orders),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Export(orders, outputPath); err != nil {
		logger.ErrorContext(ctx, "export failed", slog.String("error", err.Error()))
		return result, err
	}

	logger.InfoContext(ctx, "cleaning run complete",
		slog.Int("rows", result.Summary.Rows),
		slog.String("first_order", result.Summary.FirstOrder.Format(domain.DateLayout)),
		slog.String("last_order", result.Summary.LastOrder.Format(domain.DateLayout)))

	return result, nil
}

// summarize computes the run summary from the cleaned table
func summarize(orders []domain.Order) Summary {
	s := Summary{Rows: len(orders)}
	for _, o := range orders {
		if s.FirstOrder.IsZero() || o.OrderDate.Before(s.FirstOrder) {
			s.FirstOrder = o.OrderDate
		}
		if o.OrderDate.After(s.LastOrder) {
			s.LastOrder = o.OrderDate
		}
	}
	return s
}
