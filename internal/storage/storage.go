// backend-go/internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
)

// ErrNotFound is returned when no snapshot exists for a dataset.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore persists encoded result bundles keyed by dataset ID.
type SnapshotStore interface {
	Save(ctx context.Context, datasetID string, snap *Snapshot) error
	Load(ctx context.Context, datasetID string) (*Snapshot, error)
	Delete(ctx context.Context, datasetID string) error
}

// New builds the store the configuration selects.
func New(cfg *config.Config) (SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return NewLocalStore(cfg.App.DataDir, cfg.Storage.SnapshotBudget), nil
	case "s3":
		return NewS3Store(S3Config{
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			UseSSL:    cfg.Storage.S3UseSSL,
			Budget:    cfg.Storage.SnapshotBudget,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
