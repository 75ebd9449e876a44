package domain

import "testing"

func f64(v float64) *float64 { return &v }

func TestCountFacetsPageLocal(t *testing.T) {
	resp := &SearchResponse{
		Total: 240,
		Results: []SearchResult{
			{ImageURL: "https://example.com/a.jpg"},
			{Latitude: f64(52.5), Longitude: f64(13.4)},
			{Price: f64(19.99)},
			{Source: "/library/novel.epub"},
			{Snippet: "plain text result"},
		},
	}

	counts := CountFacets(resp, TabAll)

	if counts.Net != 240 {
		t.Errorf("Net should be the backend total, got %d", counts.Net)
	}
	if counts.Images != 1 || counts.Maps != 1 || counts.Shopping != 1 || counts.Books != 1 {
		t.Errorf("unexpected page-local counts: %+v", counts)
	}
	if counts.Videos != 0 || counts.News != 0 {
		t.Errorf("videos/news should be zero off their tab: %+v", counts)
	}
}

func TestCountFacetsNonExclusive(t *testing.T) {
	// One result can belong to several facets at once
	resp := &SearchResponse{
		Total: 1,
		Results: []SearchResult{
			{
				ImageURL: "https://example.com/shop.jpg",
				Price:    f64(49),
				Address:  "12 Market St",
				Source:   "/catalogue/brochure.pdf",
			},
		},
	}

	counts := CountFacets(resp, TabAll)
	if counts.Images != 1 || counts.Shopping != 1 || counts.Maps != 1 || counts.Books != 1 {
		t.Errorf("facet membership should not be exclusive: %+v", counts)
	}
}

func TestCountFacetsDedicatedTabs(t *testing.T) {
	resp := &SearchResponse{Total: 33}

	counts := CountFacets(resp, TabVideos)
	if counts.Videos != 33 {
		t.Errorf("expected videos count 33 on videos tab, got %d", counts.Videos)
	}

	counts = CountFacets(resp, TabNews)
	if counts.News != 33 {
		t.Errorf("expected news count 33 on news tab, got %d", counts.News)
	}
}

func TestFacetPredicates(t *testing.T) {
	r := SearchResult{ImageBase64: "aGVsbG8="}
	if !r.HasImage() {
		t.Error("base64 image should count as an image")
	}

	r = SearchResult{Country: "Iceland"}
	if !r.HasLocation() {
		t.Error("country alone should count as a location")
	}

	r = SearchResult{Latitude: f64(0)}
	if r.HasLocation() {
		t.Error("latitude without longitude is not a location")
	}

	r = SearchResult{Source: "/docs/MANUAL.PDF"}
	if !r.IsBook() {
		t.Error("pdf extension match should be case-insensitive")
	}

	r = SearchResult{Source: "/docs/manual.txt"}
	if r.IsBook() {
		t.Error("txt file is not a book")
	}

	r = SearchResult{}
	if r.HasPrice() {
		t.Error("absent price should not count")
	}
}
