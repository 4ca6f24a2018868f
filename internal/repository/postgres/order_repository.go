// backend-go/internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

// ReplaceDataset swaps the stored order history for a dataset in one
// transaction. Orders are expected to be already deduplicated; the unique
// index on (dataset_id, order_id, line_key) guards against double inserts
// from retried uploads.
func (r *orderRepository) ReplaceDataset(ctx context.Context, datasetID string, orders []domain.Order, refunds []domain.Refund) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE dataset_id = $1`, datasetID); err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM refunds WHERE dataset_id = $1`, datasetID); err != nil {
			return fmt.Errorf("failed to clear refunds: %w", err)
		}

		orderQuery := `
			INSERT INTO orders (
				dataset_id, order_id, line_key, order_date, total_owed, unit_price,
				product_name, quantity, asin, currency, is_digital, publisher
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (dataset_id, order_id, line_key) DO NOTHING
		`

		stmt, err := tx.PrepareContext(ctx, orderQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, order := range orders {
			lineKey := order.ASIN
			if lineKey == "" {
				lineKey = order.ProductName
			}
			_, err := stmt.ExecContext(
				ctx,
				datasetID,
				order.OrderID,
				lineKey,
				order.OrderDate,
				order.TotalOwed,
				order.UnitPrice,
				order.ProductName,
				order.Quantity,
				order.ASIN,
				order.Currency,
				order.IsDigital,
				order.Publisher,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order: %w", err)
			}
		}

		refundQuery := `
			INSERT INTO refunds (dataset_id, order_id, amount_refunded, refund_date, currency)
			VALUES ($1, $2, $3, $4, $5)
		`

		refundStmt, err := tx.PrepareContext(ctx, refundQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer refundStmt.Close()

		for _, refund := range refunds {
			_, err := refundStmt.ExecContext(
				ctx,
				datasetID,
				refund.OrderID,
				refund.AmountRefunded,
				refund.RefundDate,
				refund.Currency,
			)
			if err != nil {
				return fmt.Errorf("failed to insert refund: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) GetDataset(ctx context.Context, datasetID string) ([]domain.Order, []domain.Refund, error) {
	orderQuery := `
		SELECT
			order_id, order_date, total_owed, unit_price, product_name,
			quantity, asin, currency, is_digital, publisher
		FROM orders
		WHERE dataset_id = $1
		ORDER BY order_date, order_id, line_key
	`

	var orders []domain.Order
	if err := sqlx.SelectContext(ctx, r.db, &orders, orderQuery, datasetID); err != nil {
		return nil, nil, fmt.Errorf("failed to get orders: %w", err)
	}

	refundQuery := `
		SELECT order_id, amount_refunded, refund_date, currency
		FROM refunds
		WHERE dataset_id = $1
		ORDER BY refund_date, order_id
	`

	var refunds []domain.Refund
	if err := sqlx.SelectContext(ctx, r.db, &refunds, refundQuery, datasetID); err != nil {
		return nil, nil, fmt.Errorf("failed to get refunds: %w", err)
	}

	return orders, refunds, nil
}

func (r *orderRepository) GetYears(ctx context.Context, datasetID string) ([]int, error) {
	query := `
		SELECT year FROM (
			SELECT DISTINCT EXTRACT(YEAR FROM order_date)::int AS year
			FROM orders WHERE dataset_id = $1
			UNION
			SELECT DISTINCT EXTRACT(YEAR FROM refund_date)::int AS year
			FROM refunds WHERE dataset_id = $1
		) years
		ORDER BY year DESC
	`

	var years []int
	if err := sqlx.SelectContext(ctx, r.db, &years, query, datasetID); err != nil {
		return nil, fmt.Errorf("failed to get years: %w", err)
	}

	return years, nil
}

func (r *orderRepository) DeleteDataset(ctx context.Context, datasetID string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE dataset_id = $1`, datasetID); err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM refunds WHERE dataset_id = $1`, datasetID); err != nil {
			return fmt.Errorf("failed to delete refunds: %w", err)
		}
		return nil
	})
}
