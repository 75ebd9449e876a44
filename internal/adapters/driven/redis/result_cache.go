// Package redis implements driven.ResultCache using Redis
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*ResultCache)(nil)

const resultPrefix = "search:result:"

// ResultCache caches normalised search pages in Redis so that repeated
// identical queries skip the backend round trip.
type ResultCache struct {
	client *redis.Client
}

// NewResultCache creates a new Redis-backed ResultCache
func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

// Get returns the cached page for key, or domain.ErrNotFound on a miss
func (c *ResultCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	data, err := c.client.Get(ctx, resultPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached result: %w", err)
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return &resp, nil
}

// Set stores a page under key for ttl
func (c *ResultCache) Set(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, resultPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}
