// backend-go/internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the order history tables when they do not exist yet.
// Run at startup so fresh databases work without a separate migration step.
func EnsureSchema(ctx context.Context, db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id           BIGSERIAL PRIMARY KEY,
			dataset_id   TEXT NOT NULL,
			order_id     TEXT NOT NULL,
			line_key     TEXT NOT NULL,
			order_date   TIMESTAMPTZ NOT NULL,
			total_owed   DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
			product_name TEXT NOT NULL,
			quantity     INT NOT NULL DEFAULT 1,
			asin         TEXT NOT NULL DEFAULT '',
			currency     TEXT NOT NULL DEFAULT 'USD',
			is_digital   BOOLEAN NOT NULL DEFAULT FALSE,
			publisher    TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS orders_dataset_line_idx
			ON orders (dataset_id, order_id, line_key)`,
		`CREATE INDEX IF NOT EXISTS orders_dataset_year_idx
			ON orders (dataset_id, order_date)`,
		`CREATE TABLE IF NOT EXISTS refunds (
			id              BIGSERIAL PRIMARY KEY,
			dataset_id      TEXT NOT NULL,
			order_id        TEXT NOT NULL,
			amount_refunded DOUBLE PRECISION NOT NULL DEFAULT 0,
			refund_date     TIMESTAMPTZ NOT NULL,
			currency        TEXT NOT NULL DEFAULT 'USD',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS refunds_dataset_idx
			ON refunds (dataset_id, refund_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
