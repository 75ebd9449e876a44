package driving

import (
	"context"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// SearchService handles document search operations
type SearchService interface {
	// Search performs a facet-aware search for one page of results
	Search(ctx context.Context, query string, page, size int, filters domain.FilterOptions, tab domain.Tab) (*domain.SearchResponse, error)

	// AdvancedSearch performs a search with a structured filter set
	AdvancedSearch(ctx context.Context, query string, filters domain.AdvancedFilters, page, size int) (*domain.SearchResponse, error)

	// GetDocument fetches a single document by identifier.
	// Returns (nil, nil) when the document does not exist.
	GetDocument(ctx context.Context, id string) (*domain.SearchResult, error)

	// RecentSearches returns the most recently executed searches
	RecentSearches(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}
