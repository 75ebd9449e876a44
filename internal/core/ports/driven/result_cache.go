package driven

import (
	"context"
	"time"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// ResultCache stores recently fetched search pages.
// Entries expire after the TTL supplied on Set.
type ResultCache interface {
	// Get retrieves a cached page. Returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) (*domain.SearchResponse, error)

	// Set stores a page under the given key
	Set(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error
}
