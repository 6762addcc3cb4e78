package api

import (
	"net/http"

	"github.com/bookdenapp/bookden-server/internal/http/response"
)

// ReindexResponse reports the outcome of a search index rebuild.
type ReindexResponse struct {
	BooksIndexed int `json:"books_indexed"`
}

// handleReindex rebuilds the search index from the active catalog.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	count, err := s.catalogService.Reindex(r.Context())
	if err != nil {
		s.logger.Error("Reindex failed", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, ReindexResponse{BooksIndexed: count}, s.logger)
}
