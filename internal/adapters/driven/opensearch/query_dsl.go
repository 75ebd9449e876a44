package opensearch

import "github.com/whiskeycoder/osg-search/internal/core/domain"

// Field weights of the full-text clause: body text ranks highest, the
// filename next, the raw payload lowest.
var searchFields = []string{"content^3", "file_name^2", "raw_content"}

// encodeSearchBody translates a resolved QueryRequest into the backend's
// query DSL. Fuzzy matching and highlighting are delegated entirely to
// the backend; nothing is reimplemented client-side.
func encodeSearchBody(req domain.QueryRequest) map[string]any {
	match := map[string]any{
		"query":  req.Text,
		"fields": searchFields,
	}
	if req.ExactPhrase {
		match["type"] = "phrase"
	} else {
		match["type"] = "best_fields"
		match["fuzziness"] = "AUTO"
	}

	boolQuery := map[string]any{
		"must": []any{
			map[string]any{"multi_match": match},
		},
	}

	var filters []any
	if req.Window != nil {
		filters = append(filters, map[string]any{
			"range": map[string]any{
				"created_date": map[string]any{
					"gte": req.Window.From,
					"lte": req.Window.To,
				},
			},
		})
	}
	if req.SourcePath != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"file_path": req.SourcePath},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	sort := make([]any, 0, len(req.Sort))
	for _, key := range req.Sort {
		order := "desc"
		if key.Ascending {
			order = "asc"
		}
		sort = append(sort, map[string]any{
			key.Field: map[string]any{"order": order},
		})
	}

	return map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"highlight": map[string]any{
			"fields": map[string]any{
				"content":     map[string]any{},
				"file_name":   map[string]any{},
				"raw_content": map[string]any{},
			},
		},
		"from": req.From,
		"size": req.Size,
		"sort": sort,
	}
}
