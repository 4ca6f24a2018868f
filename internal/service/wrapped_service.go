// backend-go/internal/service/wrapped_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/cache"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/repository"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/storage"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
)

// ErrDatasetNotFound is returned when neither the snapshot store nor the
// database holds anything for a dataset.
var ErrDatasetNotFound = errors.New("dataset not found")

// WrappedService orchestrates the full upload-to-stats flow: parse CSVs,
// run the engine, persist the normalized history, and serve year switches
// from whatever layer still has the data. The repository is optional; when
// it is nil the snapshot store is the only persistence.
type WrappedService struct {
	parser *ingest.Parser
	engine *wrapped.Engine
	repo   repository.OrderRepository
	store  storage.SnapshotStore
	cache  cache.StatsCache
	log    zerolog.Logger
}

func NewWrappedService(
	parser *ingest.Parser,
	engine *wrapped.Engine,
	repo repository.OrderRepository,
	store storage.SnapshotStore,
	statsCache cache.StatsCache,
	log zerolog.Logger,
) *WrappedService {
	return &WrappedService{
		parser: parser,
		engine: engine,
		repo:   repo,
		store:  store,
		cache:  statsCache,
		log:    log,
	}
}

// ProcessUpload parses the uploaded export files, computes stats for the
// target year and persists the result. Persistence failures are logged but do
// not fail the upload; the computed stats are still returned.
func (s *WrappedService) ProcessUpload(ctx context.Context, datasetID string, paths []string, targetYear int) (*domain.StatsResult, error) {
	files := s.parser.ParseFiles(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no readable export files in upload")
	}

	result := s.engine.ComputeFromFiles(files, targetYear)

	if s.repo != nil {
		if err := s.repo.ReplaceDataset(ctx, datasetID, result.AllOrders, result.AllRefunds); err != nil {
			s.log.Error().Err(err).Str("dataset", datasetID).Msg("failed to persist order history")
		}
	}

	snap := storage.NewSnapshot(result, targetYear, time.Now())
	if err := s.store.Save(ctx, datasetID, snap); err != nil {
		s.log.Error().Err(err).Str("dataset", datasetID).Msg("failed to save snapshot")
	}

	if err := s.cache.InvalidateDataset(ctx, datasetID); err != nil {
		s.log.Warn().Err(err).Str("dataset", datasetID).Msg("failed to invalidate stats cache")
	}
	if err := s.cache.SetStats(ctx, datasetID, targetYear, result.Stats); err != nil {
		s.log.Warn().Err(err).Str("dataset", datasetID).Msg("failed to prime stats cache")
	}

	return result, nil
}

// GetStats serves stats for one year, cheapest source first: cache, then the
// persisted order history recomputed through the year-switch path.
func (s *WrappedService) GetStats(ctx context.Context, datasetID string, year int) (*domain.WrappedStats, error) {
	if stats, ok, err := s.cache.GetStats(ctx, datasetID, year); err != nil {
		s.log.Warn().Err(err).Str("dataset", datasetID).Msg("stats cache read failed")
	} else if ok {
		return stats, nil
	}

	orders, refunds, err := s.loadHistory(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	stats, _ := s.engine.ComputeForYear(orders, refunds, year)

	if err := s.cache.SetStats(ctx, datasetID, year, stats); err != nil {
		s.log.Warn().Err(err).Str("dataset", datasetID).Msg("failed to cache stats")
	}
	return stats, nil
}

// GetResult returns the full bundle for one year, including transaction
// detail for the exploration endpoints.
func (s *WrappedService) GetResult(ctx context.Context, datasetID string, year int) (*domain.StatsResult, error) {
	orders, refunds, err := s.loadHistory(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	stats, processed := s.engine.ComputeForYear(orders, refunds, year)
	return &domain.StatsResult{
		Stats:         stats,
		ProcessedData: processed,
		AllOrders:     orders,
		AllRefunds:    refunds,
	}, nil
}

// GetYears lists every year the dataset has activity in, most recent first.
func (s *WrappedService) GetYears(ctx context.Context, datasetID string) ([]int, error) {
	if s.repo != nil {
		years, err := s.repo.GetYears(ctx, datasetID)
		if err == nil && len(years) > 0 {
			return years, nil
		}
		if err != nil {
			s.log.Warn().Err(err).Str("dataset", datasetID).Msg("failed to read years from database")
		}
	}

	orders, refunds, err := s.loadHistory(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return wrapped.YearsFromOrders(orders, refunds), nil
}

// GetYearlyData returns the cross-year spending rollup.
func (s *WrappedService) GetYearlyData(ctx context.Context, datasetID string) ([]domain.YearlyData, error) {
	orders, _, err := s.loadHistory(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return wrapped.YearlyDataFromOrders(orders), nil
}

// OrderQuery shapes one page of the order listing.
type OrderQuery struct {
	Year    int
	Search  string
	SortBy  wrapped.SortField
	Desc    bool
	Page    int
	PerPage int
}

// OrderPage is one page of order detail plus its pagination envelope.
type OrderPage struct {
	Orders     []domain.Order     `json:"orders"`
	Pagination wrapped.Pagination `json:"pagination"`
}

// ListOrders serves the transaction exploration endpoint.
func (s *WrappedService) ListOrders(ctx context.Context, datasetID string, q OrderQuery) (*OrderPage, error) {
	result, err := s.GetResult(ctx, datasetID, q.Year)
	if err != nil {
		return nil, err
	}

	orders := wrapped.FilterOrders(result.ProcessedData.Orders, q.Search)
	orders = wrapped.SortOrders(orders, q.SortBy, q.Desc)
	page, pagination := wrapped.Paginate(orders, q.Page, q.PerPage)

	return &OrderPage{Orders: page, Pagination: pagination}, nil
}

// loadHistory restores the full normalized order history from the snapshot
// store, falling back to the database when the snapshot is gone.
func (s *WrappedService) loadHistory(ctx context.Context, datasetID string) ([]domain.Order, []domain.Refund, error) {
	snap, err := s.store.Load(ctx, datasetID)
	if err == nil {
		return snap.AllOrders, snap.AllRefunds, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn().Err(err).Str("dataset", datasetID).Msg("failed to load snapshot")
	}

	if s.repo == nil {
		return nil, nil, ErrDatasetNotFound
	}

	orders, refunds, err := s.repo.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(orders) == 0 && len(refunds) == 0 {
		return nil, nil, ErrDatasetNotFound
	}
	return orders, refunds, nil
}
