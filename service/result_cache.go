package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"lotus-engine/domain"
	"lotus-engine/metrics"
	"lotus-engine/repository"
)

// cacheKey hashes the canonical JSON form of req under an operation prefix.
func cacheKey(op string, req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", op, xxhash.Sum64(data)), nil
}

// resultCache wraps a CacheRepository with JSON encoding, TTLs and metrics.
// A nil cache disables caching.
type resultCache struct {
	cache   repository.CacheRepository
	ttl     time.Duration
	metrics *metrics.Registry
	logger  *slog.Logger
}

func (c *resultCache) load(ctx context.Context, key string, dest any) bool {
	if c.cache == nil {
		return false
	}
	raw, ok := c.cache.Get(ctx, key)
	if ok {
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			c.logger.Warn("discarding undecodable cache entry", slog.String("key", key), slog.Any("error", err))
			ok = false
		}
	}
	c.metrics.CacheLookup(ok)
	return ok
}

func (c *resultCache) store(ctx context.Context, key string, value any) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Warn("failed to write cache entry", slog.String("key", key), slog.Any("error", err))
	}
}

// recordSnapshot stores the request/result pair and returns the snapshot ID,
// or "" when saving failed. Failures never fail the computation.
func recordSnapshot(ctx context.Context, repo repository.SnapshotRepository, logger *slog.Logger, kind domain.SnapshotKind, req, result any) string {
	if repo == nil {
		return ""
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		logger.Warn("failed to encode snapshot request", slog.String("kind", string(kind)), slog.Any("error", err))
		return ""
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		logger.Warn("failed to encode snapshot result", slog.String("kind", string(kind)), slog.Any("error", err))
		return ""
	}

	snapshot := &domain.Snapshot{Kind: kind, Request: reqJSON, Result: resultJSON}
	if err := repo.Save(ctx, snapshot); err != nil {
		logger.Warn("failed to save snapshot", slog.String("kind", string(kind)), slog.Any("error", err))
		return ""
	}
	return snapshot.ID
}
