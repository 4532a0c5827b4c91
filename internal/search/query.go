package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit is used when Params.Limit is not positive.
const DefaultLimit = 20

// Params configures a product search.
type Params struct {
	Query string // Free text matched against product names

	// Filters
	Activity   string   // Exact activity name
	Categories []string // Exact category names, OR-ed together

	// Pagination
	Limit  int
	Offset int

	// Fuzziness is the edit distance tolerated on the name (0 disables).
	Fuzziness int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     DefaultLimit,
		Fuzziness: 1,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single matching product.
type Hit struct {
	Name     string  `json:"name"`
	Activity string  `json:"activity"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Names returns the product names of the hits in result order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		names[i] = h.Name
	}
	return names
}

// Search executes a product search. Hits are ordered by relevance, then by
// ascending name.
func (s *ProductIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score", "key"})
	searchRequest.Fields = []string{"name", "activity", "category"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{Name: hit.ID, Score: hit.Score}
		if a, ok := hit.Fields["activity"].(string); ok {
			h.Activity = a
		}
		if c, ok := hit.Fields["category"].(string); ok {
			h.Category = c
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		slugMatch := bleve.NewMatchQuery(q)
		slugMatch.SetField("slug")
		slugMatch.SetBoost(1.0)
		textQueries = append(textQueries, slugMatch)

		lower := strings.ToLower(q)

		// Typo tolerance on the name
		if params.Fuzziness > 0 {
			fuzzyQuery := bleve.NewFuzzyQuery(lower)
			fuzzyQuery.SetFuzziness(params.Fuzziness)
			fuzzyQuery.SetField("name")
			fuzzyQuery.SetBoost(0.8)
			textQueries = append(textQueries, fuzzyQuery)
		}

		// Prefix query for autocomplete (minimum 2 chars)
		if len(lower) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(lower)
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Activity != "" {
		aq := bleve.NewTermQuery(params.Activity)
		aq.SetField("activity")
		queries = append(queries, aq)
	}

	if len(params.Categories) > 0 {
		categoryQueries := make([]query.Query, len(params.Categories))
		for i, c := range params.Categories {
			cq := bleve.NewTermQuery(c)
			cq.SetField("category")
			categoryQueries[i] = cq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(categoryQueries...))
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
