package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query
	Genre string // Filter by exact genre

	// Pagination
	Limit  int
	Offset int

	// Options
	Highlight bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Author     string            `json:"author,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query with pagination and optional highlighting.
func (s *Index) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"id", "title", "author"}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("author")
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// MatchIDs returns the IDs of every book matching the given text query.
// It is used to restrict catalog listings to full-text matches. The returned
// slice is never nil: a query that matches nothing yields an empty slice.
func (s *Index) MatchIDs(ctx context.Context, text string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildTextQuery(text)

	// Page through the full match set so the caller sees every ID.
	const pageSize = 1000
	ids := make([]string, 0, 64)

	for offset := 0; ; offset += pageSize {
		searchRequest := bleve.NewSearchRequestOptions(searchQuery, pageSize, offset, false)
		searchResult, err := s.index.SearchInContext(ctx, searchRequest)
		if err != nil {
			return nil, fmt.Errorf("execute match query: %w", err)
		}

		for _, hit := range searchResult.Hits {
			ids = append(ids, hit.ID)
		}

		if uint64(offset+len(searchResult.Hits)) >= searchResult.Total || len(searchResult.Hits) == 0 {
			break
		}
	}

	return ids, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		queries = append(queries, buildTextQuery(params.Query))
	}

	// Genre filter (exact match on the keyword-analyzed field)
	if params.Genre != "" {
		gq := bleve.NewTermQuery(params.Genre)
		gq.SetField("genres")
		queries = append(queries, gq)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// buildTextQuery builds the free-text portion of a query. It matches across
// title, author, description and genres, boosting title highest.
func buildTextQuery(text string) query.Query {
	textQueries := []query.Query{}

	titleMatch := bleve.NewMatchQuery(text)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	textQueries = append(textQueries, titleMatch)

	authorMatch := bleve.NewMatchQuery(text)
	authorMatch.SetField("author")
	authorMatch.SetBoost(2.0)
	textQueries = append(textQueries, authorMatch)

	descMatch := bleve.NewMatchQuery(text)
	descMatch.SetField("description")
	textQueries = append(textQueries, descMatch)

	genreMatch := bleve.NewMatchQuery(text)
	genreMatch.SetField("genres")
	genreMatch.SetBoost(1.5)
	textQueries = append(textQueries, genreMatch)

	// Fuzzy matching for typo tolerance on title
	fuzzyQuery := bleve.NewFuzzyQuery(text)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	// Prefix query for autocomplete (minimum 2 chars)
	if len(text) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(text))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
