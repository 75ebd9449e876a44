package domain

// Tab identifies a facet view over one result set
type Tab string

const (
	TabAll      Tab = "all"
	TabNet      Tab = "net"
	TabImages   Tab = "images"
	TabMaps     Tab = "maps"
	TabShopping Tab = "shopping"
	TabVideos   Tab = "videos"
	TabNews     Tab = "news"
	TabBooks    Tab = "books"
)

// SortOrder determines the primary sort key of a search
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
)

// DateRange is a coarse calendar window selection
type DateRange string

const (
	DateRangeAll    DateRange = "all"
	DateRangeToday  DateRange = "today"
	DateRangeWeek   DateRange = "week"
	DateRangeMonth  DateRange = "month"
	DateRangeYear   DateRange = "year"
	DateRangeCustom DateRange = "custom"
)

// TimeFrame is a finer-grained now-minus-duration window.
// When set it overrides whatever window DateRange produced.
type TimeFrame string

const (
	TimeFrameLastHour  TimeFrame = "last_hour"
	TimeFrameLast24h   TimeFrame = "last_24h"
	TimeFrameLastWeek  TimeFrame = "last_week"
	TimeFrameLastMonth TimeFrame = "last_month"
)

// CustomDateRange holds user-supplied from/to date strings.
// Only meaningful when DateRange is DateRangeCustom; passed verbatim to the backend.
type CustomDateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FilterOptions configures sorting and date filtering for a search
type FilterOptions struct {
	SortBy          SortOrder        `json:"sort_by"`
	DateRange       DateRange        `json:"date_range"`
	CustomDateRange *CustomDateRange `json:"custom_date_range,omitempty"`
	TimeFrame       TimeFrame        `json:"time_frame,omitempty"`
}

// DefaultFilterOptions returns sensible defaults
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		SortBy:    SortRelevance,
		DateRange: DateRangeAll,
	}
}

// SearchResult is the canonical, tab-agnostic result record.
// Title, URL and Snippet are always set (placeholder values when missing);
// everything optional is absent rather than zero-filled.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Content string `json:"content,omitempty"`

	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp,omitempty"`
	Source    string  `json:"source,omitempty"`

	// Images
	ImageURL     string `json:"image_url,omitempty"`
	ImageBase64  string `json:"image_base64,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// Location
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Address     string    `json:"address,omitempty"`
	Country     string    `json:"country,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"` // [lat, lon]

	// Shopping
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`

	// RawJSON keeps the fully parsed embedded payload for structured
	// detail-view rendering. Only populated on single-document fetches.
	RawJSON map[string]any `json:"raw_json,omitempty"`
}

// SearchResponse is one fetched page of results
type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Query      string         `json:"query"`
	Took       int            `json:"took"` // backend latency in ms
	Answer     *InstantAnswer `json:"answer,omitempty"`
}

// InstantAnswer is an evaluated arithmetic expression shown above results
type InstantAnswer struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// DefaultPageSize returns the page size for a tab.
// Image grids load larger pages than result lists.
func DefaultPageSize(tab Tab) int {
	if tab == TabImages {
		return 50
	}
	return 10
}
