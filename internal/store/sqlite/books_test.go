package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/store"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateBook_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created := mustCreateBook(t, s, &domain.Book{
		ID:            "book-1",
		Title:         "The Hollow Library",
		Author:        "José Saramago",
		Description:   "A librarian discovers the shelves rearrange at night.",
		Genres:        []string{"Fantasy", "Mystery"},
		RatingAverage: 4.3,
		RatingCount:   87,
		Prices: map[domain.PriceFormat]float64{
			domain.FormatPaperback: 14.99,
			domain.FormatHardcover: 27.50,
		},
	})

	got, err := s.GetBook(ctx, "book-1")
	require.NoError(t, err)

	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Author, got.Author)
	assert.Equal(t, []string{"Fantasy", "Mystery"}, got.Genres)
	assert.Equal(t, domain.BookStatusActive, got.Status)
	assert.Equal(t, 4.3, got.RatingAverage)
	assert.Equal(t, 87, got.RatingCount)
	assert.Equal(t, 14.99, got.Prices[domain.FormatPaperback])
	assert.Equal(t, 27.50, got.Prices[domain.FormatHardcover])
}

func TestCreateBook_Duplicate(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "First"})

	dup := &domain.Book{ID: "book-1", Title: "Second", Status: domain.BookStatusActive}
	dup.InitTimestamps()
	err := s.CreateBook(context.Background(), dup)

	assert.ErrorIs(t, err, store.ErrBookAlreadyExists)
}

func TestGetBook_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetBook(context.Background(), "missing")

	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestGetBooks_SkipsMissing(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "A"})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "B"})

	books, err := s.GetBooks(context.Background(), []string{"book-1", "missing", "book-2"})
	require.NoError(t, err)

	assert.Len(t, books, 2)
}

func TestListBooks_OnlyActive(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "Active"})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "Inactive", Status: domain.BookStatusInactive})
	mustCreateBook(t, s, &domain.Book{ID: "book-3", Title: "Discontinued", Status: domain.BookStatusDiscontinued})

	page, err := s.ListBooks(context.Background(), store.CatalogQuery{})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-1", page.Items[0].ID)
	assert.Equal(t, 1, page.Pagination.Total)
}

func TestListBooks_GenreFilter(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "A", Genres: []string{"Mystery", "Thriller"}})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "B", Genres: []string{"Romance"}})

	page, err := s.ListBooks(context.Background(), store.CatalogQuery{Genre: "Mystery"})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-1", page.Items[0].ID)
}

func TestListBooks_AuthorSubstringCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "A", Author: "Agatha Christie"})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "B", Author: "José Saramago"})

	page, err := s.ListBooks(context.Background(), store.CatalogQuery{Author: "CHRIS"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-1", page.Items[0].ID)

	// Accent-insensitive: "jose" matches "José".
	page, err = s.ListBooks(context.Background(), store.CatalogQuery{Author: "jose"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-2", page.Items[0].ID)
}

func TestListBooks_MinRating(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "A", RatingAverage: 4.5})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "B", RatingAverage: 3.9})

	page, err := s.ListBooks(context.Background(), store.CatalogQuery{MinRating: floatPtr(4.0)})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-1", page.Items[0].ID)
}

// TestListBooks_MaxPriceFormatAsymmetry pins the deliberate asymmetry: only
// paperback and ebook prices are compared against the cap. A cheap-enough
// hardcover does not qualify.
func TestListBooks_MaxPriceFormatAsymmetry(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{
		ID: "paperback-deal", Title: "A",
		Prices: map[domain.PriceFormat]float64{
			domain.FormatPaperback: 19.99,
			domain.FormatHardcover: 29.99,
		},
	})
	mustCreateBook(t, s, &domain.Book{
		ID: "hardcover-only", Title: "B",
		Prices: map[domain.PriceFormat]float64{
			domain.FormatHardcover: 15.00,
		},
	})
	mustCreateBook(t, s, &domain.Book{
		ID: "ebook-deal", Title: "C",
		Prices: map[domain.PriceFormat]float64{
			domain.FormatEbook: 9.99,
		},
	})

	page, err := s.ListBooks(context.Background(), store.CatalogQuery{MaxPrice: floatPtr(20)})
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Items))
	for _, b := range page.Items {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"paperback-deal", "ebook-deal"}, ids)
}

func TestListBooks_MatchIDs(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "A"})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "B"})

	// Non-empty match set restricts results.
	page, err := s.ListBooks(ctx, store.CatalogQuery{MatchIDs: []string{"book-2"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "book-2", page.Items[0].ID)

	// Empty non-nil match set matches nothing.
	page, err = s.ListBooks(ctx, store.CatalogQuery{MatchIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestListBooks_Sorting(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mustCreateBook(t, s, &domain.Book{ID: "book-1", Title: "Beta", Author: "Zoe", RatingAverage: 3.0, RatingCount: 500})
	mustCreateBook(t, s, &domain.Book{ID: "book-2", Title: "alpha", Author: "Adam", RatingAverage: 4.8, RatingCount: 10})
	mustCreateBook(t, s, &domain.Book{ID: "book-3", Title: "Gamma", Author: "Mia", RatingAverage: 4.1, RatingCount: 90})

	tests := []struct {
		name  string
		query store.CatalogQuery
		want  []string
	}{
		{"default title asc case-insensitive", store.CatalogQuery{}, []string{"book-2", "book-1", "book-3"}},
		{"rating desc", store.CatalogQuery{SortField: store.SortByRating, SortDirection: store.SortDesc}, []string{"book-2", "book-3", "book-1"}},
		{"popularity desc", store.CatalogQuery{SortField: store.SortByPopularity, SortDirection: store.SortDesc}, []string{"book-1", "book-3", "book-2"}},
		{"author asc", store.CatalogQuery{SortField: store.SortByAuthor}, []string{"book-2", "book-3", "book-1"}},
		{"unknown field falls back to title", store.CatalogQuery{SortField: "isbn"}, []string{"book-2", "book-1", "book-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.ListBooks(ctx, tt.query)
			require.NoError(t, err)

			got := make([]string, 0, len(page.Items))
			for _, b := range page.Items {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestListBooks_PaginationLaw verifies that walking all pages yields exactly
// the full match set with no duplicates and no omissions.
func TestListBooks_PaginationLaw(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	const total = 27
	for i := 0; i < total; i++ {
		mustCreateBook(t, s, &domain.Book{
			ID:    fmt.Sprintf("book-%02d", i),
			Title: fmt.Sprintf("Title %02d", i%7), // duplicate titles force tie-breaks
		})
	}

	seen := make(map[string]bool)
	query := store.CatalogQuery{PageSize: 10}
	query.Normalize()

	first, err := s.ListBooks(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, total, first.Pagination.Total)
	assert.Equal(t, 3, first.Pagination.TotalPages)

	for page := 1; page <= first.Pagination.TotalPages; page++ {
		result, err := s.ListBooks(ctx, store.CatalogQuery{Page: page, PageSize: 10})
		require.NoError(t, err)

		for _, b := range result.Items {
			assert.False(t, seen[b.ID], "duplicate across pages: %s", b.ID)
			seen[b.ID] = true
		}
	}

	assert.Len(t, seen, total)
}

func TestListActiveBooksExcluding_ORFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mustCreateBook(t, s, &domain.Book{ID: "genre-match", Title: "A", Genres: []string{"Mystery"}, RatingAverage: 3.0})
	mustCreateBook(t, s, &domain.Book{ID: "author-match", Title: "B", Author: "Agatha Christie", RatingAverage: 2.5})
	mustCreateBook(t, s, &domain.Book{ID: "rating-match", Title: "C", Genres: []string{"Romance"}, RatingAverage: 4.2})
	mustCreateBook(t, s, &domain.Book{ID: "no-match", Title: "D", Genres: []string{"Romance"}, RatingAverage: 3.5})
	mustCreateBook(t, s, &domain.Book{ID: "excluded", Title: "E", Genres: []string{"Mystery"}, RatingAverage: 4.9})
	mustCreateBook(t, s, &domain.Book{ID: "inactive", Title: "F", Genres: []string{"Mystery"}, RatingAverage: 4.9, Status: domain.BookStatusInactive})

	books, err := s.ListActiveBooksExcluding(ctx, []string{"excluded"}, store.CandidateMatch{
		Genres:     []string{"Mystery"},
		AuthorKeys: []string{"agatha christie"},
		MinRating:  4.0,
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"genre-match", "author-match", "rating-match"}, ids)
}

func TestListActiveBooksExcluding_ColdStart(t *testing.T) {
	s := setupTestStore(t)

	mustCreateBook(t, s, &domain.Book{ID: "high", Title: "A", RatingAverage: 4.5})
	mustCreateBook(t, s, &domain.Book{ID: "low", Title: "B", RatingAverage: 3.9})

	// No genres or authors: only the rating arm can admit books.
	books, err := s.ListActiveBooksExcluding(context.Background(), nil, store.CandidateMatch{MinRating: 4.0})
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "high", books[0].ID)
}
