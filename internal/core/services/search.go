package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/whiskeycoder/osg-search/internal/calculator"
	"github.com/whiskeycoder/osg-search/internal/core/domain"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driving"
	"github.com/whiskeycoder/osg-search/internal/normalisers"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// SearchConfig holds search gateway configuration
type SearchConfig struct {
	// Collection is the general document collection. Tabs with a
	// dedicated collection override it.
	Collection string

	// CacheTTL is how long fetched pages stay servable from cache
	CacheTTL time.Duration

	Logger *slog.Logger
}

// searchService is the gateway between UI state and the search engine.
// It builds queries, normalises hits, computes pagination metadata and
// classifies errors. Cache and history are optional collaborators;
// their failures never fail a search.
type searchService struct {
	engine     driven.SearchEngine
	cache      driven.ResultCache
	history    driven.HistoryStore
	collection string
	cacheTTL   time.Duration
	logger     *slog.Logger

	// seq tags every search so that a slow response superseded by a
	// newer request is discarded instead of overwriting fresh results.
	seq atomic.Uint64
}

// NewSearchService creates a new SearchService.
// cache and history may be nil; the corresponding features are skipped.
func NewSearchService(
	engine driven.SearchEngine,
	cache driven.ResultCache,
	history driven.HistoryStore,
	cfg SearchConfig,
) driving.SearchService {
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollection
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &searchService{
		engine:     engine,
		cache:      cache,
		history:    history,
		collection: cfg.Collection,
		cacheTTL:   cfg.CacheTTL,
		logger:     cfg.Logger,
	}
}

// Search performs a facet-aware search for one page of results
func (s *searchService) Search(ctx context.Context, query string, page, size int, filters domain.FilterOptions, tab domain.Tab) (*domain.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = domain.DefaultPageSize(tab)
	}

	req := domain.BuildQuery(query, page, size, filters, tab, s.collection)

	resp, err := s.run(ctx, req, query, page, size)
	if err != nil {
		return nil, err
	}

	if answer, ok := calculator.Calculate(query); ok {
		resp.Answer = &domain.InstantAnswer{
			Expression: answer.Expression,
			Result:     answer.Result,
		}
	}

	s.record(ctx, query, tab, resp)
	return resp, nil
}

// AdvancedSearch performs a search with a structured filter set.
// An exact-phrase request substitutes a phrase match for the fuzzy
// multi-field match; everything else mirrors Search.
func (s *searchService) AdvancedSearch(ctx context.Context, query string, filters domain.AdvancedFilters, page, size int) (*domain.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = domain.DefaultPageSize(domain.TabAll)
	}

	req := domain.BuildAdvancedQuery(query, filters, page, size, s.collection)
	return s.run(ctx, req, query, page, size)
}

// run executes one built query: cache lookup, engine round trip,
// staleness check, normalisation and pagination metadata.
func (s *searchService) run(ctx context.Context, req domain.QueryRequest, query string, page, size int) (*domain.SearchResponse, error) {
	seq := s.seq.Add(1)

	key := cacheKey(req)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return cached, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("result cache read failed", "error", err)
		}
	}

	hitPage, err := s.engine.Search(ctx, req)
	if err != nil {
		return nil, classifySearchError(err)
	}

	// Discard responses that lost the race against a newer request.
	if s.seq.Load() != seq {
		return nil, domain.ErrSuperseded
	}

	resp := s.buildResponse(query, page, size, hitPage)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.logger.Warn("result cache write failed", "error", err)
		}
	}

	return resp, nil
}

// buildResponse normalises every raw hit and computes pagination metadata
func (s *searchService) buildResponse(query string, page, size int, hitPage *driven.HitPage) *domain.SearchResponse {
	results := make([]domain.SearchResult, 0, len(hitPage.Hits))
	for _, hit := range hitPage.Hits {
		result := normalisers.Normalise(hit.Source)
		result.ID = hit.ID
		result.Score = hit.Score
		results = append(results, result)
	}

	totalPages := 0
	if hitPage.Total > 0 {
		totalPages = (hitPage.Total + size - 1) / size
	}

	return &domain.SearchResponse{
		Results:    results,
		Total:      hitPage.Total,
		Page:       page,
		TotalPages: totalPages,
		Query:      query,
		Took:       hitPage.Took,
	}
}

// GetDocument fetches a single document from the general collection.
// Not-found is a defined empty result, never an error.
func (s *searchService) GetDocument(ctx context.Context, id string) (*domain.SearchResult, error) {
	hit, err := s.engine.GetDocument(ctx, s.collection, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifySearchError(err)
	}

	result := normalisers.Normalise(hit.Source)
	result.ID = hit.ID
	result.Score = 0 // no query context on a direct fetch
	result.RawJSON = normalisers.ParseRaw(hit.Source)
	return &result, nil
}

// RecentSearches returns the most recently executed searches
func (s *searchService) RecentSearches(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	if s.history == nil {
		return []*domain.HistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.history.Recent(ctx, limit)
}

// record persists the executed search best-effort
func (s *searchService) record(ctx context.Context, query string, tab domain.Tab, resp *domain.SearchResponse) {
	if s.history == nil || query == "" {
		return
	}

	entry := &domain.HistoryEntry{
		Query:     query,
		Tab:       tab,
		Total:     resp.Total,
		TookMS:    resp.Took,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("search history write failed", "error", err)
	}
}

// classifySearchError maps transport failures onto the domain taxonomy.
// Timeouts keep their distinct kind; everything else becomes a generic,
// retry-worthy search failure.
func classifySearchError(err error) error {
	if errors.Is(err, domain.ErrSearchTimeout) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
}

// cacheKey derives a stable cache key from a resolved query request
func cacheKey(req domain.QueryRequest) string {
	window := ""
	if req.Window != nil {
		window = req.Window.From + ".." + req.Window.To
	}
	sort := ""
	for _, key := range req.Sort {
		order := "desc"
		if key.Ascending {
			order = "asc"
		}
		sort += key.Field + ":" + order + ";"
	}
	return fmt.Sprintf("%s|%s|%d|%d|%s|%s|%s|%t",
		req.Collection, req.Text, req.From, req.Size, sort, window, req.SourcePath, req.ExactPhrase)
}
