// backend-go/internal/cache/analysis_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/merchview/backend-go/internal/config"
	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
)

const (
	analysisKeyPrefix     = "analysis:report"
	analysisScanBatchSize = 100
)

// AnalysisCache stores rendered analysis reports (already JSON-encoded)
// keyed by filter. Any write to outlets, products or expiries invalidates
// everything: the report is a function of all three collections.
type AnalysisCache interface {
	GetReport(ctx context.Context, filter expiry.Filter) ([]byte, bool, error)
	SetReport(ctx context.Context, filter expiry.Filter, payload []byte) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) GetReport(ctx context.Context, filter expiry.Filter) ([]byte, bool, error) {
	key := buildAnalysisKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *redisAnalysisCache) SetReport(ctx context.Context, filter expiry.Filter, payload []byte) error {
	key := buildAnalysisKey(filter)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix, analysisScanBatchSize)
}

func (n *noopAnalysisCache) GetReport(ctx context.Context, filter expiry.Filter) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) SetReport(ctx context.Context, filter expiry.Filter, payload []byte) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildAnalysisKey(filter expiry.Filter) string {
	return fmt.Sprintf("%s:%s", analysisKeyPrefix, analysisFilterHash(filter))
}

func analysisFilterHash(filter expiry.Filter) string {
	parts := []string{}

	if filter.OutletID != "" && filter.OutletID != expiry.MatchAll {
		parts = append(parts, "outlet="+filter.OutletID)
	}
	if filter.ProductID != "" && filter.ProductID != expiry.MatchAll {
		parts = append(parts, "product="+filter.ProductID)
	}
	if filter.StartDate != "" {
		parts = append(parts, "start="+filter.StartDate)
	}
	if filter.EndDate != "" {
		parts = append(parts, "end="+filter.EndDate)
	}

	if len(parts) == 0 {
		return "default"
	}

	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
