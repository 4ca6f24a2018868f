package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

const (
	statsKeyPrefix     = "wrapped:stats"
	statsScanBatchSize = 100
)

// StatsCache keeps computed per-year stats hot so a year switch does not
// recompute or re-read the snapshot store on every request.
type StatsCache interface {
	GetStats(ctx context.Context, datasetID string, year int) (*domain.WrappedStats, bool, error)
	SetStats(ctx context.Context, datasetID string, year int, stats *domain.WrappedStats) error
	InvalidateDataset(ctx context.Context, datasetID string) error
	InvalidateAll(ctx context.Context) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopStatsCache struct{}

func NewStatsCache(cfg config.CacheConfig) (StatsCache, error) {
	if !cfg.Enabled {
		return &noopStatsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopStatsCache() StatsCache {
	return &noopStatsCache{}
}

func (c *redisStatsCache) GetStats(ctx context.Context, datasetID string, year int) (*domain.WrappedStats, bool, error) {
	key := buildStatsKey(datasetID, year)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var stats domain.WrappedStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false, fmt.Errorf("decode stats cache: %w", err)
	}

	return &stats, true, nil
}

func (c *redisStatsCache) SetStats(ctx context.Context, datasetID string, year int, stats *domain.WrappedStats) error {
	key := buildStatsKey(datasetID, year)
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateDataset drops every cached year for one dataset. Called after a
// fresh upload replaces the dataset's orders.
func (c *redisStatsCache) InvalidateDataset(ctx context.Context, datasetID string) error {
	return deleteKeysWithPrefix(ctx, c.client, statsKeyPrefix+":"+datasetHash(datasetID), statsScanBatchSize)
}

func (c *redisStatsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, statsKeyPrefix, statsScanBatchSize)
}

func (n *noopStatsCache) GetStats(ctx context.Context, datasetID string, year int) (*domain.WrappedStats, bool, error) {
	return nil, false, nil
}

func (n *noopStatsCache) SetStats(ctx context.Context, datasetID string, year int, stats *domain.WrappedStats) error {
	return nil
}

func (n *noopStatsCache) InvalidateDataset(ctx context.Context, datasetID string) error {
	return nil
}

func (n *noopStatsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildStatsKey(datasetID string, year int) string {
	return fmt.Sprintf("%s:%s:%d", statsKeyPrefix, datasetHash(datasetID), year)
}

func datasetHash(datasetID string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(datasetID)))
	return hex.EncodeToString(sum[:])
}
