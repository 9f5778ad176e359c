package store

import (
	"context"
	"log/slog"

	apperrors "retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// orderSummaryView is the derived summary view the dashboard's headline
// numbers come from. It is dropped before reloading the orders table and
// recreated afterwards, since it depends on the table.
const orderSummaryView = `
CREATE OR REPLACE VIEW order_summary AS
SELECT
    COUNT(*) AS total_orders,
    SUM(sale_price) AS total_revenue,
    SUM(profit) AS total_profit,
    AVG(sale_price) AS avg_order_value,
    AVG(profit_margin) AS avg_profit_margin,
    MIN(order_date) AS first_order_date,
    MAX(order_date) AS last_order_date
FROM orders`

// Seed replaces the contents of the orders table with the cleaned orders
// and recreates the order_summary view. Rows are inserted in batches of
// batchSize. Returns the number of rows loaded.
func (s *Store) Seed(ctx context.Context, orders []domain.Order, batchSize int) (int, error) {
	s.logger.InfoContext(ctx, "seeding orders table",
		slog.Int("rows", len(orders)),
		slog.Int("batch_size", batchSize))

	db := s.db.WithContext(ctx)

	if err := db.Exec("DROP VIEW IF EXISTS order_summary CASCADE").Error; err != nil {
		return 0, apperrors.NewStorageError("failed to drop order_summary view", err)
	}

	migrator := db.Migrator()
	if migrator.HasTable(&Order{}) {
		if err := migrator.DropTable(&Order{}); err != nil {
			return 0, apperrors.NewStorageError("failed to drop orders table", err)
		}
	}
	if err := migrator.CreateTable(&Order{}); err != nil {
		return 0, apperrors.NewStorageError("failed to create orders table", err)
	}

	records := make([]Order, len(orders))
	for i, o := range orders {
		records[i] = fromDomain(o)
	}
	if len(records) > 0 {
		if err := db.CreateInBatches(records, batchSize).Error; err != nil {
			return 0, apperrors.NewStorageError("failed to insert orders", err)
		}
	}

	if err := db.Exec(orderSummaryView).Error; err != nil {
		return 0, apperrors.NewStorageError("failed to recreate order_summary view", err)
	}

	s.logger.InfoContext(ctx, "seed complete", slog.Int("rows", len(records)))
	return len(records), nil
}

// CountOrders returns the number of rows currently in the orders table,
// used to verify a load.
func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Order{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewStorageError("failed to count orders", err)
	}
	return count, nil
}
