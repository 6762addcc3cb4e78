package domain

import "time"

// ReadingEvent records that a user finished (or meaningfully engaged with)
// a book. Events are append-only; the set of distinct book IDs across a
// user's events forms their consumed set.
type ReadingEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BookID     string    `json:"book_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WishlistEntry records a book a user has saved for later. Wishlisted books
// are excluded from recommendations alongside consumed ones.
type WishlistEntry struct {
	UserID  string    `json:"user_id"`
	BookID  string    `json:"book_id"`
	AddedAt time.Time `json:"added_at"`
}
