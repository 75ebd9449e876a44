package domain

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func TestBuildQueryDefaults(t *testing.T) {
	req := buildQueryAt(testNow, "cat", 1, 10, DefaultFilterOptions(), TabNet, "")

	if req.Text != "cat" {
		t.Errorf("expected text 'cat', got %q", req.Text)
	}
	if req.Collection != DefaultCollection {
		t.Errorf("expected collection %q, got %q", DefaultCollection, req.Collection)
	}
	if req.From != 0 || req.Size != 10 {
		t.Errorf("expected from=0 size=10, got from=%d size=%d", req.From, req.Size)
	}
	if req.Window != nil {
		t.Errorf("expected no date window, got %+v", req.Window)
	}

	want := []SortKey{
		{Field: SortFieldScore},
		{Field: SortFieldDate},
	}
	if len(req.Sort) != 2 || req.Sort[0] != want[0] || req.Sort[1] != want[1] {
		t.Errorf("unexpected sort keys: %+v", req.Sort)
	}
}

func TestBuildQueryPagination(t *testing.T) {
	req := buildQueryAt(testNow, "cat", 3, 10, DefaultFilterOptions(), TabAll, "")
	if req.From != 20 {
		t.Errorf("expected from=20 for page 3, got %d", req.From)
	}

	// Out-of-range page clamps to the first page
	req = buildQueryAt(testNow, "cat", 0, 10, DefaultFilterOptions(), TabAll, "")
	if req.From != 0 {
		t.Errorf("expected from=0 for page 0, got %d", req.From)
	}
}

func TestBuildQueryTabDefaults(t *testing.T) {
	req := buildQueryAt(testNow, "cat", 1, 0, DefaultFilterOptions(), TabImages, "")
	if req.Size != 50 {
		t.Errorf("expected image page size 50, got %d", req.Size)
	}
	if req.Collection != "images_index" {
		t.Errorf("expected images_index, got %q", req.Collection)
	}

	req = buildQueryAt(testNow, "cat", 1, 0, DefaultFilterOptions(), TabShopping, "docs")
	if req.Size != 10 {
		t.Errorf("expected default page size 10, got %d", req.Size)
	}
	if req.Collection != "docs" {
		t.Errorf("expected configured general collection, got %q", req.Collection)
	}
}

func TestBuildQuerySortOrders(t *testing.T) {
	tests := []struct {
		sort  SortOrder
		first SortKey
	}{
		{SortRelevance, SortKey{Field: SortFieldScore}},
		{SortNewest, SortKey{Field: SortFieldDate}},
		{SortOldest, SortKey{Field: SortFieldDate, Ascending: true}},
	}

	for _, tt := range tests {
		filters := DefaultFilterOptions()
		filters.SortBy = tt.sort
		req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
		if req.Sort[0] != tt.first {
			t.Errorf("sort %s: expected primary key %+v, got %+v", tt.sort, tt.first, req.Sort[0])
		}
		if len(req.Sort) != 2 {
			t.Errorf("sort %s: expected a two-key sort, got %+v", tt.sort, req.Sort)
		}
	}
}

func TestDateWindowToday(t *testing.T) {
	filters := DefaultFilterOptions()
	filters.DateRange = DateRangeToday

	req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
	if req.Window == nil {
		t.Fatal("expected a date window for today")
	}
	if req.Window.From != "2025-06-15" || req.Window.To != "2025-06-15" {
		t.Errorf("unexpected today window: %+v", req.Window)
	}
}

func TestDateWindowCalendarRanges(t *testing.T) {
	tests := []struct {
		dateRange DateRange
		from      string
	}{
		{DateRangeWeek, "2025-06-08"},
		{DateRangeMonth, "2025-05-16"},
		{DateRangeYear, "2024-06-15"},
	}

	for _, tt := range tests {
		filters := DefaultFilterOptions()
		filters.DateRange = tt.dateRange

		req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
		if req.Window == nil {
			t.Fatalf("%s: expected a date window", tt.dateRange)
		}
		if req.Window.From != tt.from || req.Window.To != "2025-06-15" {
			t.Errorf("%s: unexpected window %+v", tt.dateRange, req.Window)
		}
	}
}

func TestDateWindowCustomPassedVerbatim(t *testing.T) {
	filters := DefaultFilterOptions()
	filters.DateRange = DateRangeCustom
	filters.CustomDateRange = &CustomDateRange{From: "2020-01-01", To: "2020-12-31"}

	req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
	if req.Window == nil || req.Window.From != "2020-01-01" || req.Window.To != "2020-12-31" {
		t.Errorf("unexpected custom window: %+v", req.Window)
	}
}

func TestDateWindowCustomWithoutRangeIsDropped(t *testing.T) {
	filters := DefaultFilterOptions()
	filters.DateRange = DateRangeCustom // no CustomDateRange attached

	req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
	if req.Window != nil {
		t.Errorf("expected no window for custom range without bounds, got %+v", req.Window)
	}
}

func TestTimeFrameOverridesDateRange(t *testing.T) {
	for _, dateRange := range []DateRange{DateRangeAll, DateRangeToday, DateRangeWeek, DateRangeMonth, DateRangeYear} {
		filters := DefaultFilterOptions()
		filters.DateRange = dateRange
		filters.TimeFrame = TimeFrameLast24h

		req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
		if req.Window == nil {
			t.Fatalf("%s: expected a window", dateRange)
		}
		if req.Window.From != "2025-06-14T12:30:00Z" || req.Window.To != "2025-06-15T12:30:00Z" {
			t.Errorf("%s: time frame did not win: %+v", dateRange, req.Window)
		}
	}
}

func TestTimeFrameDurations(t *testing.T) {
	tests := []struct {
		frame TimeFrame
		from  string
	}{
		{TimeFrameLastHour, "2025-06-15T11:30:00Z"},
		{TimeFrameLast24h, "2025-06-14T12:30:00Z"},
		{TimeFrameLastWeek, "2025-06-08T12:30:00Z"},
		{TimeFrameLastMonth, "2025-05-16T12:30:00Z"},
	}

	for _, tt := range tests {
		filters := DefaultFilterOptions()
		filters.TimeFrame = tt.frame

		req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
		if req.Window == nil || req.Window.From != tt.from {
			t.Errorf("%s: unexpected window %+v", tt.frame, req.Window)
		}
	}
}

func TestUnknownTimeFrameIgnored(t *testing.T) {
	filters := DefaultFilterOptions()
	filters.TimeFrame = TimeFrame("fortnight")

	req := buildQueryAt(testNow, "x", 1, 10, filters, TabAll, "")
	if req.Window != nil {
		t.Errorf("expected unknown time frame to produce no window, got %+v", req.Window)
	}
}

func TestBuildAdvancedQuery(t *testing.T) {
	filters := AdvancedFilters{
		Window:      &DateWindow{From: "2024-01-01", To: "2024-06-01"},
		SourcePath:  "/archive/reports",
		ExactPhrase: true,
	}

	req := BuildAdvancedQuery("quarterly report", filters, 2, 20, "")
	if req.Collection != DefaultCollection {
		t.Errorf("expected general collection, got %q", req.Collection)
	}
	if req.From != 20 || req.Size != 20 {
		t.Errorf("unexpected paging: from=%d size=%d", req.From, req.Size)
	}
	if !req.ExactPhrase || req.SourcePath != "/archive/reports" {
		t.Errorf("filters not carried: %+v", req)
	}
	if req.Window == nil || req.Window.From != "2024-01-01" {
		t.Errorf("window not carried: %+v", req.Window)
	}
	if req.Sort[0].Field != SortFieldScore {
		t.Errorf("expected relevance sort, got %+v", req.Sort)
	}
}

func TestCollectionForTab(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabAll, DefaultCollection},
		{TabNet, DefaultCollection},
		{TabMaps, DefaultCollection},
		{TabShopping, DefaultCollection},
		{TabImages, "images_index"},
		{TabVideos, "videos_index"},
		{TabNews, "news_index"},
		{TabBooks, "books_index"},
		{Tab("bogus"), DefaultCollection},
	}

	for _, tt := range tests {
		if got := CollectionForTab(tt.tab, ""); got != tt.want {
			t.Errorf("CollectionForTab(%q) = %q, want %q", tt.tab, got, tt.want)
		}
	}
}
