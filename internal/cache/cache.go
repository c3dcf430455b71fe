// Package cache is the explicit search-result cache: entries are keyed by
// a fingerprint of the normalized request and expire on a TTL. Catalog
// writes happen in other services, which flush this cache through the
// internal invalidate endpoint.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/search/dto"
)

const keyPrefix = "discovery:search:"

type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSearchCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SearchCache {
	return &SearchCache{client: client, ttl: ttl, logger: log}
}

// Key fingerprints a normalized request. Identical predicate sets,
// pagination and sort collapse to the same key.
func Key(input *dto.SearchInput) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", keyPrefix, md5.Sum(data)), nil
}

func (c *SearchCache) Get(ctx context.Context, key string) (*dto.SearchResult, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var res dto.SearchResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		c.logger.Warn("discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &res, true
}

func (c *SearchCache) Set(ctx context.Context, key string, res *dto.SearchResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache search result", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateSearch drops every cached search page. Called by write paths
// after catalog mutations.
func (c *SearchCache) InvalidateSearch(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
