// Package normalisers turns raw indexed documents into canonical result
// records. Documents are schema-less field bags whose canonical payload
// lives in a raw_content field holding serialized JSON; everything here
// reads schema-on-read and degrades to "field absent" instead of failing.
package normalisers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

const snippetLength = 200

var (
	coordSeparators = regexp.MustCompile(`[,\s]+`)
	nonPriceChars   = regexp.MustCompile(`[^0-9.\-]`)
	currencyPattern = regexp.MustCompile(`(?i)[€$£]|USD|EUR|GBP`)
)

// payload is the embedded raw_content payload in one of two states:
// parsed JSON or unparsed text. Parsing happens exactly once, here;
// downstream code never re-attempts it.
type payload struct {
	data gjson.Result
	ok   bool
}

// parsePayload parses the serialized raw_content field. A missing field
// parses as an empty payload; a present but malformed field yields the
// unparsed state.
func parsePayload(doc gjson.Result) payload {
	raw := doc.Get("raw_content").String()
	if raw == "" {
		return payload{data: gjson.Parse("{}"), ok: true}
	}
	if !gjson.Valid(raw) {
		return payload{}
	}
	return payload{data: gjson.Parse(raw), ok: true}
}

// Normalise extracts a canonical result record from one raw document.
// Payload fields win over root-level document fields. It never fails:
// every resolution step degrades to an absent field, and a malformed
// payload switches to a root-fields-only extraction path.
//
// ID and Score belong to the surrounding hit and are attached by the
// caller.
func Normalise(source json.RawMessage) domain.SearchResult {
	doc := gjson.ParseBytes(source)

	result := domain.SearchResult{
		Title:     "Untitled",
		URL:       "#",
		Content:   doc.Get("content").String(),
		Timestamp: doc.Get("created_date").String(),
		Source:    "Unknown",
	}
	if path := doc.Get("file_path").String(); path != "" {
		result.Source = path
	}

	p := parsePayload(doc)
	if !p.ok {
		// Degraded mode: raw_content is not valid JSON, so root-level
		// fields are all we have. Not an error.
		if name := doc.Get("file_name").String(); name != "" {
			result.Title = name
		}
		if content := doc.Get("content").String(); content != "" {
			result.Snippet = truncate(content)
		}
		resolveRootImages(doc, &result)
		return result
	}

	resolveText(p.data, doc, &result)
	resolveImages(p.data, doc, &result)
	resolveLocation(p.data, &result)
	resolveCommerce(p.data, &result)
	return result
}

// ParseRaw returns the fully parsed embedded payload for structured
// detail-view rendering, or nil when the payload is missing or malformed.
func ParseRaw(source json.RawMessage) map[string]any {
	raw := gjson.GetBytes(source, "raw_content").String()
	if raw == "" {
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	return parsed
}

func resolveText(p, doc gjson.Result, result *domain.SearchResult) {
	if title := p.Get("title").String(); title != "" {
		result.Title = title
	} else if name := doc.Get("file_name").String(); name != "" {
		result.Title = name
	}

	if url := p.Get("url").String(); url != "" {
		result.URL = url
	}

	switch {
	case p.Get("summary").String() != "":
		result.Snippet = p.Get("summary").String()
	case p.Get("full_text").String() != "":
		result.Snippet = truncate(p.Get("full_text").String())
	case doc.Get("content").String() != "":
		result.Snippet = truncate(doc.Get("content").String())
	}
}

func resolveImages(p, doc gjson.Result, result *domain.SearchResult) {
	result.ImageURL = firstString(p, "image_url", "thumbnail", "thumbnail_url")
	result.ImageBase64 = p.Get("image_base64").String()
	result.ThumbnailURL = firstString(p, "thumbnail", "thumbnail_url")

	// An images array may hold bare URL strings or objects.
	if result.ImageURL == "" {
		if images := p.Get("images").Array(); len(images) > 0 {
			first := images[0]
			switch {
			case first.Type == gjson.String:
				result.ImageURL = first.String()
			case first.IsObject():
				result.ImageURL = firstString(first, "url", "src", "href")
				if result.ImageBase64 == "" {
					result.ImageBase64 = firstString(first, "base64", "data")
				}
				if result.ThumbnailURL == "" {
					result.ThumbnailURL = firstString(first, "thumbnail", "thumb")
				}
			}
		}
	}

	resolveRootImages(doc, result)
}

// resolveRootImages consults root-level document fields as the final
// image fallback.
func resolveRootImages(doc gjson.Result, result *domain.SearchResult) {
	if result.ImageURL == "" {
		result.ImageURL = firstString(doc, "image_url", "thumbnail_url", "imageUrl")
	}
	if result.ImageBase64 == "" {
		result.ImageBase64 = firstString(doc, "image_base64", "imageBase64")
	}
	if result.ThumbnailURL == "" {
		result.ThumbnailURL = firstString(doc, "thumbnail_url", "thumbnailUrl")
	}
}

func resolveLocation(p gjson.Result, result *domain.SearchResult) {
	result.Address = firstString(p, "Address", "address", "Location", "location")
	result.Country = firstString(p, "Country", "country")

	if lat, lon, ok := resolveCoordinates(p); ok {
		result.Latitude = &lat
		result.Longitude = &lon
		result.Coordinates = []float64{lat, lon}
	}
}

// resolveCoordinates tries paired numeric lat/long keys, then a single
// "lat Long" string holding two numbers, then a 2-element Coordinates
// array. First successful parse wins; malformed values are dropped,
// never defaulted to 0,0.
func resolveCoordinates(p gjson.Result) (float64, float64, bool) {
	lat, latOK := firstNumber(p, "Lat", "lat", "latitude")
	lon, lonOK := firstNumber(p, "Long", "long", "lng", "longitude")
	if latOK && lonOK {
		return lat, lon, true
	}

	if pair := p.Get("lat Long"); pair.Type == gjson.String {
		parts := coordSeparators.Split(strings.TrimSpace(pair.String()), -1)
		if len(parts) >= 2 {
			lat, latErr := strconv.ParseFloat(parts[0], 64)
			lon, lonErr := strconv.ParseFloat(parts[1], 64)
			if latErr == nil && lonErr == nil {
				return lat, lon, true
			}
		}
	}

	if coords := p.Get("Coordinates").Array(); len(coords) >= 2 {
		lat, latErr := strconv.ParseFloat(coords[0].String(), 64)
		lon, lonErr := strconv.ParseFloat(coords[1].String(), 64)
		if latErr == nil && lonErr == nil {
			return lat, lon, true
		}
	}

	return 0, 0, false
}

func resolveCommerce(p gjson.Result, result *domain.SearchResult) {
	price := p.Get("price")
	switch price.Type {
	case gjson.Number:
		v := price.Num
		result.Price = &v
	case gjson.String:
		// Prices often arrive embedded in a currency string like "$1,299.00".
		cleaned := nonPriceChars.ReplaceAllString(price.String(), "")
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			result.Price = &v
		}
	}

	result.Currency = p.Get("currency").String()
	if result.Currency == "" && price.Type == gjson.String {
		result.Currency = currencyPattern.FindString(price.String())
	}
}

// truncate returns the first 200 characters of s followed by an ellipsis
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes) + "..."
}

// firstString returns the first key holding a non-empty string value
func firstString(res gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := res.Get(key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// firstNumber returns the first key holding a numeric value
func firstNumber(res gjson.Result, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v := res.Get(key); v.Type == gjson.Number {
			return v.Num, true
		}
	}
	return 0, false
}
