// backend-go/internal/repository/order_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// OrderRepository persists normalized, deduplicated order history per dataset.
// A dataset is one user's complete multi-year upload; re-uploading replaces it
// wholesale rather than merging.
type OrderRepository interface {
	ReplaceDataset(ctx context.Context, datasetID string, orders []domain.Order, refunds []domain.Refund) error
	GetDataset(ctx context.Context, datasetID string) ([]domain.Order, []domain.Refund, error)
	GetYears(ctx context.Context, datasetID string) ([]int, error)
	DeleteDataset(ctx context.Context, datasetID string) error
}
