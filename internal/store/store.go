// Package store defines the persistence contracts for the BookDen server.
package store

import (
	"context"

	"github.com/bookdenapp/bookden-server/internal/domain"
)

// CandidateMatch describes the OR-filter that admits a book into the
// recommendation candidate pool: any one of genre overlap, author overlap,
// or a rating at or above MinRating qualifies.
type CandidateMatch struct {
	Genres     []string // Genre tags; overlap with any admits the book
	AuthorKeys []string // Normalized author keys; membership admits the book
	MinRating  float64  // RatingAverage >= MinRating admits the book
}

// Store is the persistence interface the services depend on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Books.
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBooks(ctx context.Context, ids []string) ([]*domain.Book, error)
	ListBooks(ctx context.Context, query CatalogQuery) (*Page[*domain.Book], error)
	ListAllActiveBooks(ctx context.Context) ([]*domain.Book, error)

	// ListActiveBooksExcluding returns active books whose IDs are not in
	// exclude and that satisfy the candidate OR-filter.
	ListActiveBooksExcluding(ctx context.Context, exclude []string, match CandidateMatch) ([]*domain.Book, error)

	// Users.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// Reading history. Lookups return empty sets for unknown users rather
	// than erroring; recommendation treats absent history as a cold start.
	RecordReadingEvent(ctx context.Context, event *domain.ReadingEvent) error
	GetConsumedBookIDs(ctx context.Context, userID string) ([]string, error)

	// Wishlist.
	AddToWishlist(ctx context.Context, entry *domain.WishlistEntry) error
	RemoveFromWishlist(ctx context.Context, userID, bookID string) error
	GetWishlistBookIDs(ctx context.Context, userID string) ([]string, error)

	// Lifecycle.
	Ping(ctx context.Context) error
	Close() error
}
