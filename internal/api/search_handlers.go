package api

import (
	"net/http"

	"github.com/bookdenapp/bookden-server/internal/http/response"
	"github.com/bookdenapp/bookden-server/internal/search"
)

// handleSearch runs a relevance-ranked full-text query over the catalog.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := params.Get("q")
	if q == "" {
		response.BadRequest(w, "q is required", s.logger)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	result, err := s.catalogService.Search(r.Context(), search.SearchParams{
		Query:     q,
		Genre:     params.Get("genre"),
		Limit:     limit,
		Offset:    offset,
		Highlight: true,
	})
	if err != nil {
		s.logger.Error("Search failed", "error", err, "query", q)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
