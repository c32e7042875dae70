// internal/catalog/search.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchIndex narrows cross-store item lookups through Elasticsearch. It is
// a prefilter only: resolution semantics stay with the engine, which runs
// its own matching over whatever candidate rows come back.
type SearchIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewSearchIndex(es *elasticsearch.Client, index string) *SearchIndex {
	return &SearchIndex{es: es, index: index}
}

// ItemIDsMatching returns ids of indexed items whose name matches the text.
func (s *SearchIndex) ItemIDsMatching(ctx context.Context, nameText string) ([]string, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"name": map[string]interface{}{
					"query":    nameText,
					"operator": "and",
				},
			},
		},
		"_source": false,
		"size":    100,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search items: %s", res.Status())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
