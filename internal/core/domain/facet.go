package domain

import "strings"

// Facet membership predicates. A single result may satisfy several
// facets at once.

// HasImage reports whether the result carries any image identifier
func (r *SearchResult) HasImage() bool {
	return r.ImageURL != "" || r.ImageBase64 != "" || r.ThumbnailURL != ""
}

// HasLocation reports whether the result carries numeric coordinates
// or a textual address/country
func (r *SearchResult) HasLocation() bool {
	if r.Latitude != nil && r.Longitude != nil {
		return true
	}
	return r.Address != "" || r.Country != ""
}

// HasPrice reports whether the result carries a numeric price
func (r *SearchResult) HasPrice() bool {
	return r.Price != nil
}

// IsBook reports whether the result originates from a book-like file
func (r *SearchResult) IsBook() bool {
	source := strings.ToLower(r.Source)
	return strings.HasSuffix(source, ".pdf") || strings.HasSuffix(source, ".epub")
}

// FacetCounts holds per-tab result counts derived from one fetched page
type FacetCounts struct {
	Net      int `json:"net"`
	Images   int `json:"images"`
	Maps     int `json:"maps"`
	Shopping int `json:"shopping"`
	Videos   int `json:"videos"`
	News     int `json:"news"`
	Books    int `json:"books"`
}

// CountFacets re-partitions one fetched page across facet tabs.
// No backend query is issued: counts other than Net reflect only the
// current page's results, not the backend-side total per facet. Videos
// and news have dedicated collections, so their counts are only known
// when their tab is the active one.
func CountFacets(resp *SearchResponse, active Tab) FacetCounts {
	counts := FacetCounts{Net: resp.Total}
	for i := range resp.Results {
		r := &resp.Results[i]
		if r.HasImage() {
			counts.Images++
		}
		if r.HasLocation() {
			counts.Maps++
		}
		if r.HasPrice() {
			counts.Shopping++
		}
		if r.IsBook() {
			counts.Books++
		}
	}
	if active == TabVideos {
		counts.Videos = resp.Total
	}
	if active == TabNews {
		counts.News = resp.Total
	}
	return counts
}
