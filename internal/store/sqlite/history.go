package sqlite

import (
	"context"
	"fmt"

	"github.com/bookdenapp/bookden-server/internal/domain"
)

// RecordReadingEvent appends a reading event to the user's history.
func (s *Store) RecordReadingEvent(ctx context.Context, event *domain.ReadingEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_events (id, user_id, book_id, occurred_at)
		VALUES (?, ?, ?, ?)`,
		event.ID,
		event.UserID,
		event.BookID,
		formatTime(event.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("insert reading event: %w", err)
	}
	return nil
}

// GetConsumedBookIDs returns the distinct book IDs from the user's reading
// events. Unknown users yield an empty set, not an error.
func (s *Store) GetConsumedBookIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT book_id FROM reading_events WHERE user_id = ? ORDER BY book_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("get consumed book ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// AddToWishlist saves a book to the user's wishlist. Saving an already
// wishlisted book is a no-op.
func (s *Store) AddToWishlist(ctx context.Context, entry *domain.WishlistEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO wishlist (user_id, book_id, added_at)
		VALUES (?, ?, ?)`,
		entry.UserID,
		entry.BookID,
		formatTime(entry.AddedAt),
	)
	if err != nil {
		return fmt.Errorf("insert wishlist entry: %w", err)
	}
	return nil
}

// RemoveFromWishlist deletes a wishlist entry. Removing an absent entry is
// a no-op.
func (s *Store) RemoveFromWishlist(ctx context.Context, userID, bookID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE user_id = ? AND book_id = ?`,
		userID, bookID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	return nil
}

// GetWishlistBookIDs returns the book IDs on the user's wishlist.
// Unknown users yield an empty set, not an error.
func (s *Store) GetWishlistBookIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id FROM wishlist WHERE user_id = ? ORDER BY book_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist book ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// collectIDs drains a single-column id result set.
func collectIDs(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]string, error) {
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
