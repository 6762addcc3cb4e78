package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookdenapp/bookden-server/internal/domain"
	apperrors "github.com/bookdenapp/bookden-server/internal/errors"
	"github.com/bookdenapp/bookden-server/internal/recommend"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// RecommendationService produces personalized book recommendations from a
// user's reading history.
type RecommendationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(st store.Store, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:  st,
		logger: logger,
	}
}

// Recommend returns up to limit scored recommendations for the user,
// ordered by score descending. An unknown user gets an empty list, not an
// error. A known user with no history gets highly rated books (the cold
// start path). Store failures are returned to the caller untouched; the
// transport layer decides how to degrade.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = recommend.DefaultLimit
	}

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("recommendations requested for unknown user", "user_id", userID)
			return []domain.Recommendation{}, nil
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}

	consumedIDs, err := s.store.GetConsumedBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load reading history: %w", err)
	}

	wishlistIDs, err := s.store.GetWishlistBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	consumedBooks, err := s.store.GetBooks(ctx, consumedIDs)
	if err != nil {
		return nil, fmt.Errorf("load consumed books: %w", err)
	}

	profile := recommend.BuildProfile(consumedIDs, wishlistIDs, consumedBooks)

	pool, err := s.store.ListActiveBooksExcluding(ctx, profile.ExcludedIDs(), store.CandidateMatch{
		Genres:     profile.PreferredGenres(),
		AuthorKeys: profile.PreferredAuthorKeys(),
		MinRating:  recommend.CandidateRatingFloor,
	})
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	recs := recommend.Rank(profile, pool, limit)

	s.logger.Debug("recommendations computed",
		"user_id", userID,
		"consumed", len(consumedIDs),
		"candidates", len(pool),
		"returned", len(recs),
	)

	return recs, nil
}
