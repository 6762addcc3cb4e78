package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/http/response"
)

// handleGetRecommendations returns scored recommendations for a user.
// If the store cannot answer before the request deadline, the endpoint
// degrades to an empty list rather than failing the page render that
// embeds it. Other store failures surface as 500s.
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "id")

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	recs, err := s.recService.Recommend(ctx, userID, limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.logger.Warn("recommendations timed out, returning empty list", "user_id", userID, "error", err)
			response.Success(w, []domain.Recommendation{}, s.logger)
			return
		}
		s.logger.Error("Failed to compute recommendations", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, recs, s.logger)
}
