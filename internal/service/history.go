package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/id"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// HistoryService manages reading events and wishlists.
type HistoryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewHistoryService creates a new history service.
func NewHistoryService(st store.Store, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		store:  st,
		logger: logger,
	}
}

// RecordRead appends a reading event for the user. Both the user and the
// book must exist. Re-reading a book is fine; the consumed set is the
// distinct book IDs across events.
func (s *HistoryService) RecordRead(ctx context.Context, userID, bookID string) (*domain.ReadingEvent, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, fmt.Errorf("get book %s: %w", bookID, err)
	}

	event := &domain.ReadingEvent{
		ID:         id.NewEventID(),
		UserID:     userID,
		BookID:     bookID,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.store.RecordReadingEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("record reading event: %w", err)
	}

	s.logger.Info("reading event recorded", "user_id", userID, "book_id", bookID)
	return event, nil
}

// ConsumedBooks returns the distinct books the user has read.
func (s *HistoryService) ConsumedBooks(ctx context.Context, userID string) ([]*domain.Book, error) {
	ids, err := s.store.GetConsumedBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load reading history: %w", err)
	}

	books, err := s.store.GetBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load consumed books: %w", err)
	}
	return books, nil
}

// AddToWishlist saves a book on the user's wishlist. Adding a book that is
// already wishlisted is a no-op.
func (s *HistoryService) AddToWishlist(ctx context.Context, userID, bookID string) error {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("get user %s: %w", userID, err)
	}
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return fmt.Errorf("get book %s: %w", bookID, err)
	}

	entry := &domain.WishlistEntry{
		UserID:  userID,
		BookID:  bookID,
		AddedAt: time.Now().UTC(),
	}

	if err := s.store.AddToWishlist(ctx, entry); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}

	s.logger.Info("book wishlisted", "user_id", userID, "book_id", bookID)
	return nil
}

// RemoveFromWishlist deletes a wishlist entry. Removing a book that is not
// wishlisted is a no-op.
func (s *HistoryService) RemoveFromWishlist(ctx context.Context, userID, bookID string) error {
	if err := s.store.RemoveFromWishlist(ctx, userID, bookID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

// WishlistBooks returns the books on the user's wishlist.
func (s *HistoryService) WishlistBooks(ctx context.Context, userID string) ([]*domain.Book, error) {
	ids, err := s.store.GetWishlistBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	books, err := s.store.GetBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load wishlist books: %w", err)
	}
	return books, nil
}
