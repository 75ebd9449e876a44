package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/whiskeycoder/osg-search/internal/calculator"
	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// searchResponse wraps a result page with its page-local facet counts
type searchResponse struct {
	*domain.SearchResponse
	Facets domain.FacetCounts `json:"facets"`
}

// advancedSearchRequest is the POST body of an advanced search
type advancedSearchRequest struct {
	Query       string `json:"query"`
	ExactPhrase bool   `json:"exact_phrase"`
	SourcePath  string `json:"source_path"`
	From        string `json:"from"`
	To          string `json:"to"`
	Page        int    `json:"page"`
	Size        int    `json:"size"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Reports ready once optional backing stores respond
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Search endpoints

// handleSearch godoc
// @Summary      Search documents
// @Description  Execute a search for one page of results. Tab, sort order and date filters come from query parameters; facet counts for the current page ride along in the response.
// @Tags         Search
// @Produce      json
// @Param        q           query     string  true   "Search query"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        size        query     int     false  "Page size"
// @Param        tab         query     string  false  "Result tab (all, net, images, maps, shopping, videos, news, books)"
// @Param        sort        query     string  false  "Sort order (relevance, newest, oldest)"
// @Param        date_range  query     string  false  "Date range (all, today, week, month, year, custom)"
// @Param        from        query     string  false  "Custom range start (YYYY-MM-DD)"
// @Param        to          query     string  false  "Custom range end (YYYY-MM-DD)"
// @Param        time_frame  query     string  false  "Time frame override (last_hour, last_24h, last_week, last_month)"
// @Param        lucky       query     bool    false  "Redirect to the top result"
// @Success      200  {object}  searchResponse
// @Failure      400  {object}  ErrorResponse  "Missing query"
// @Failure      409  {object}  ErrorResponse  "Superseded by a newer request"
// @Failure      502  {object}  ErrorResponse  "Search failed"
// @Failure      504  {object}  ErrorResponse  "Search timed out"
// @Router       /search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 0)
	tab := domain.Tab(r.URL.Query().Get("tab"))
	if tab == "" {
		tab = domain.TabAll
	}

	filters := domain.DefaultFilterOptions()
	if sort := r.URL.Query().Get("sort"); sort != "" {
		filters.SortBy = domain.SortOrder(sort)
	}
	if dateRange := r.URL.Query().Get("date_range"); dateRange != "" {
		filters.DateRange = domain.DateRange(dateRange)
	}
	if filters.DateRange == domain.DateRangeCustom {
		filters.CustomDateRange = &domain.CustomDateRange{
			From: r.URL.Query().Get("from"),
			To:   r.URL.Query().Get("to"),
		}
	}
	if timeFrame := r.URL.Query().Get("time_frame"); timeFrame != "" {
		filters.TimeFrame = domain.TimeFrame(timeFrame)
	}

	resp, err := s.searchService.Search(r.Context(), query, page, size, filters, tab)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	// "I'm feeling lucky": jump straight to the top result
	if queryBool(r, "lucky") && len(resp.Results) > 0 {
		top := resp.Results[0]
		target := top.URL
		if target == "" || target == "#" {
			target = "/api/v1/documents/" + top.ID
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		SearchResponse: resp,
		Facets:         domain.CountFacets(resp, tab),
	})
}

// handleAdvancedSearch godoc
// @Summary      Advanced search
// @Description  Execute a search with structured filters: exact phrase matching, a source path restriction and an explicit date window.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      advancedSearchRequest  true  "Advanced search filters"
// @Success      200      {object}  searchResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing query"
// @Failure      502      {object}  ErrorResponse  "Search failed"
// @Failure      504      {object}  ErrorResponse  "Search timed out"
// @Router       /search/advanced [post]
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	filters := domain.AdvancedFilters{
		ExactPhrase: req.ExactPhrase,
		SourcePath:  req.SourcePath,
	}
	if req.From != "" || req.To != "" {
		filters.Window = &domain.DateWindow{From: req.From, To: req.To}
	}

	resp, err := s.searchService.AdvancedSearch(r.Context(), req.Query, filters, req.Page, req.Size)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		SearchResponse: resp,
		Facets:         domain.CountFacets(resp, domain.TabAll),
	})
}

// handleRecentSearches godoc
// @Summary      Recent searches
// @Description  List the most recently executed searches, newest first
// @Tags         Search
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries to return"
// @Success      200    {array}   domain.HistoryEntry
// @Failure      500    {object}  ErrorResponse
// @Router       /search/recent [get]
func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	entries, err := s.searchService.RecentSearches(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recent searches")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// handleSuggestions godoc
// @Summary      Calculator suggestions
// @Description  Example expressions matching the typed prefix, for the search box
// @Tags         Search
// @Produce      json
// @Param        q    query     string  false  "Typed prefix"
// @Success      200  {array}   string
// @Router       /search/suggestions [get]
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := calculator.Suggestions(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// Document endpoints

// handleGetDocument godoc
// @Summary      Get document
// @Description  Get a single normalised document by ID, including its parsed raw payload
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.SearchResult
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      502  {object}  ErrorResponse  "Fetch failed"
// @Router       /documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	doc, err := s.searchService.GetDocument(r.Context(), id)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// writeSearchError maps domain error kinds onto HTTP statuses
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSearchTimeout):
		writeError(w, http.StatusGatewayTimeout, "search timed out, please try again")
	case errors.Is(err, domain.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded by a newer request")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "search failed, please try again")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
