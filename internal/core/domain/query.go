package domain

import "time"

// DefaultCollection is the general document collection shared by the
// default, net, maps and shopping tabs.
const DefaultCollection = "file_index"

// Tabs with a dedicated backend collection. Everything else shares the
// general document collection.
var tabCollections = map[Tab]string{
	TabImages: "images_index",
	TabVideos: "videos_index",
	TabNews:   "news_index",
	TabBooks:  "books_index",
}

// CollectionForTab selects the backend collection for a tab.
// Unknown tabs fall back to the general collection.
func CollectionForTab(tab Tab, general string) string {
	if c, ok := tabCollections[tab]; ok {
		return c
	}
	if general != "" {
		return general
	}
	return DefaultCollection
}

// Sort fields understood by the backend
const (
	SortFieldScore = "_score"
	SortFieldDate  = "created_date"
)

// SortKey is one key of a compound sort
type SortKey struct {
	Field     string
	Ascending bool
}

// DateWindow is an inclusive [From, To] filter on the document date.
// Values are either date-only strings or full timestamps, depending on
// which filter mechanism produced the window.
type DateWindow struct {
	From string
	To   string
}

// QueryRequest is a fully resolved, well-formed search request.
// Building one never fails: invalid filter combinations degrade to
// "no filter" rather than producing an error.
type QueryRequest struct {
	Text        string
	Collection  string
	From        int
	Size        int
	Sort        []SortKey
	Window      *DateWindow
	ExactPhrase bool
	SourcePath  string
}

// AdvancedFilters is the structured filter set of an advanced search
type AdvancedFilters struct {
	Window      *DateWindow
	SourcePath  string
	ExactPhrase bool
}

const dateOnly = "2006-01-02"

var timeFrameDurations = map[TimeFrame]time.Duration{
	TimeFrameLastHour:  time.Hour,
	TimeFrameLast24h:   24 * time.Hour,
	TimeFrameLastWeek:  7 * 24 * time.Hour,
	TimeFrameLastMonth: 30 * 24 * time.Hour,
}

// BuildQuery translates free-text query plus tab/filter state into a
// structured request. Pages are 1-based; size <= 0 selects the tab default.
func BuildQuery(text string, page, size int, filters FilterOptions, tab Tab, general string) QueryRequest {
	return buildQueryAt(time.Now().UTC(), text, page, size, filters, tab, general)
}

func buildQueryAt(now time.Time, text string, page, size int, filters FilterOptions, tab Tab, general string) QueryRequest {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize(tab)
	}

	return QueryRequest{
		Text:       text,
		Collection: CollectionForTab(tab, general),
		From:       (page - 1) * size,
		Size:       size,
		Sort:       sortKeys(filters.SortBy),
		Window:     dateWindowAt(now, filters),
	}
}

// BuildAdvancedQuery builds a request from a structured filter set.
// It always targets the general collection and sorts by relevance.
func BuildAdvancedQuery(text string, filters AdvancedFilters, page, size int, general string) QueryRequest {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize(TabAll)
	}

	return QueryRequest{
		Text:        text,
		Collection:  CollectionForTab(TabAll, general),
		From:        (page - 1) * size,
		Size:        size,
		Sort:        sortKeys(SortRelevance),
		Window:      filters.Window,
		ExactPhrase: filters.ExactPhrase,
		SourcePath:  filters.SourcePath,
	}
}

// sortKeys returns a two-key sort so that ordering stays deterministic
// when primary keys are equal.
func sortKeys(by SortOrder) []SortKey {
	switch by {
	case SortNewest:
		return []SortKey{
			{Field: SortFieldDate},
			{Field: SortFieldScore},
		}
	case SortOldest:
		return []SortKey{
			{Field: SortFieldDate, Ascending: true},
			{Field: SortFieldScore},
		}
	default:
		return []SortKey{
			{Field: SortFieldScore},
			{Field: SortFieldDate},
		}
	}
}

// dateWindowAt computes the effective date window of a filter set.
// DateRange produces a calendar window of date-only strings; TimeFrame,
// when set, overwrites it with a tighter full-timestamp window. Returns
// nil when neither mechanism produces a window.
func dateWindowAt(now time.Time, filters FilterOptions) *DateWindow {
	var from, to string

	if filters.DateRange == DateRangeCustom && filters.CustomDateRange != nil {
		from = filters.CustomDateRange.From
		to = filters.CustomDateRange.To
	} else {
		switch filters.DateRange {
		case DateRangeToday:
			day := now.Format(dateOnly)
			from, to = day, day
		case DateRangeWeek:
			from, to = now.AddDate(0, 0, -7).Format(dateOnly), now.Format(dateOnly)
		case DateRangeMonth:
			from, to = now.AddDate(0, 0, -30).Format(dateOnly), now.Format(dateOnly)
		case DateRangeYear:
			from, to = now.AddDate(0, 0, -365).Format(dateOnly), now.Format(dateOnly)
		}
	}

	// TimeFrame takes precedence over whatever DateRange computed.
	if filters.TimeFrame != "" {
		if d, ok := timeFrameDurations[filters.TimeFrame]; ok {
			from = now.Add(-d).Format(time.RFC3339)
			to = now.Format(time.RFC3339)
		}
	}

	if from == "" || to == "" {
		return nil
	}
	return &DateWindow{From: from, To: to}
}
