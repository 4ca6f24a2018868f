// backend-go/internal/storage/snapshot.go
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

const snapshotVersion = 1

// Snapshot is the persisted form of one computed result bundle. AllOrders and
// AllRefunds are kept even under truncation because they are what makes a
// later year switch possible without the raw CSVs.
type Snapshot struct {
	Version    int                   `json:"version"`
	SavedAt    time.Time             `json:"saved_at"`
	TargetYear int                   `json:"target_year"`
	Truncated  bool                  `json:"truncated,omitempty"`
	Stats      *domain.WrappedStats  `json:"stats"`
	Processed  *domain.ProcessedData `json:"processed_data"`
	AllOrders  []domain.Order        `json:"all_orders"`
	AllRefunds []domain.Refund       `json:"all_refunds"`
}

// NewSnapshot wraps a computed result for persistence.
func NewSnapshot(result *domain.StatsResult, targetYear int, now time.Time) *Snapshot {
	return &Snapshot{
		Version:    snapshotVersion,
		SavedAt:    now.UTC(),
		TargetYear: targetYear,
		Stats:      result.Stats,
		Processed:  result.ProcessedData,
		AllOrders:  result.AllOrders,
		AllRefunds: result.AllRefunds,
	}
}

// Result rebuilds the in-memory bundle from a loaded snapshot.
func (s *Snapshot) Result() *domain.StatsResult {
	return &domain.StatsResult{
		Stats:         s.Stats,
		ProcessedData: s.Processed,
		AllOrders:     s.AllOrders,
		AllRefunds:    s.AllRefunds,
	}
}

// Encode serializes the snapshot, shedding detail until it fits the byte
// budget. Detail is dropped cheapest first: per-month order lists, then the
// flat transaction lists. Stats and the cross-year order set always survive.
// A budget of zero or less means unlimited.
func Encode(snap *Snapshot, budget int64) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if budget <= 0 || int64(len(data)) <= budget {
		return data, nil
	}

	trimmed := *snap
	trimmed.Truncated = true

	if trimmed.Processed != nil {
		processed := *trimmed.Processed
		months := make([]domain.MonthlyData, len(processed.MonthlyData))
		for i, month := range processed.MonthlyData {
			month.Orders = nil
			months[i] = month
		}
		processed.MonthlyData = months
		trimmed.Processed = &processed
	}

	data, err = json.Marshal(&trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if int64(len(data)) <= budget {
		return data, nil
	}

	if trimmed.Processed != nil {
		processed := *trimmed.Processed
		processed.Orders = nil
		processed.Refunds = nil
		processed.EnrichedRefunds = nil
		trimmed.Processed = &processed
	}

	data, err = json.Marshal(&trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if int64(len(data)) > budget {
		return nil, fmt.Errorf("snapshot exceeds budget even after truncation: %d > %d bytes", len(data), budget)
	}
	return data, nil
}

// Decode restores a snapshot. Unknown fields are ignored so older snapshots
// keep loading after the schema grows.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Stats == nil {
		return nil, fmt.Errorf("snapshot has no stats payload")
	}
	return &snap, nil
}
