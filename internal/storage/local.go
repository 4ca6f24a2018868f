// backend-go/internal/storage/local.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps snapshots as JSON files under a data directory.
type LocalStore struct {
	dir    string
	budget int64
}

func NewLocalStore(dir string, budget int64) *LocalStore {
	return &LocalStore{dir: dir, budget: budget}
}

func (s *LocalStore) path(datasetID string) string {
	return filepath.Join(s.dir, sanitizeID(datasetID)+".json")
}

func (s *LocalStore) Save(ctx context.Context, datasetID string, snap *Snapshot) error {
	data, err := Encode(snap, s.budget)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the live file.
	path := s.path(datasetID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}
	return nil
}

func (s *LocalStore) Load(ctx context.Context, datasetID string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(datasetID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

func (s *LocalStore) Delete(ctx context.Context, datasetID string) error {
	if err := os.Remove(s.path(datasetID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// sanitizeID keeps dataset IDs filesystem-safe.
func sanitizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "default"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}

var _ SnapshotStore = (*LocalStore)(nil)
