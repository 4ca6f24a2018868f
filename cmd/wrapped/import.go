// backend-go/cmd/wrapped/import.go
package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
	"github.com/andresuchdata/orderwrapped/backend-go/pkg/logger"
)

// runImport normalizes the export files and replaces the dataset's rows in
// Postgres. Uses the pgx stdlib driver directly; the long-running server goes
// through the repository instead.
func runImport(c *cli.Context) error {
	files, err := parsedFiles(c)
	if err != nil {
		return err
	}

	orders, refunds := wrapped.NormalizeFiles(files)
	orders = wrapped.DedupeOrders(orders)
	if len(orders) == 0 && len(refunds) == 0 {
		return fmt.Errorf("no importable rows in input files")
	}

	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	datasetID := c.String("dataset")
	if err := importDataset(c.Context, db, datasetID, orders, refunds); err != nil {
		return err
	}

	logger.Log.Info().
		Str("dataset", datasetID).
		Int("orders", len(orders)).
		Int("refunds", len(refunds)).
		Msg("import complete")
	return nil
}

func importDataset(ctx context.Context, db *sql.DB, datasetID string, orders []domain.Order, refunds []domain.Refund) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM refunds WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("failed to clear refunds: %w", err)
	}

	orderStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orders (
			dataset_id, order_id, line_key, order_date, total_owed, unit_price,
			product_name, quantity, asin, currency, is_digital, publisher
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (dataset_id, order_id, line_key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare order insert: %w", err)
	}
	defer orderStmt.Close()

	for _, order := range orders {
		lineKey := order.ASIN
		if lineKey == "" {
			lineKey = order.ProductName
		}
		if _, err := orderStmt.ExecContext(ctx,
			datasetID, order.OrderID, lineKey, order.OrderDate,
			order.TotalOwed, order.UnitPrice, order.ProductName,
			order.Quantity, order.ASIN, order.Currency, order.IsDigital, order.Publisher,
		); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
		}
	}

	refundStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO refunds (dataset_id, order_id, amount_refunded, refund_date, currency)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare refund insert: %w", err)
	}
	defer refundStmt.Close()

	for _, refund := range refunds {
		if _, err := refundStmt.ExecContext(ctx,
			datasetID, refund.OrderID, refund.AmountRefunded, refund.RefundDate, refund.Currency,
		); err != nil {
			return fmt.Errorf("failed to insert refund for %s: %w", refund.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
