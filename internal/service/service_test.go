package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden-server/internal/domain"
	apperrors "github.com/bookdenapp/bookden-server/internal/errors"
	"github.com/bookdenapp/bookden-server/internal/id"
	"github.com/bookdenapp/bookden-server/internal/search"
	"github.com/bookdenapp/bookden-server/internal/store"
	"github.com/bookdenapp/bookden-server/internal/store/sqlite"
	"github.com/bookdenapp/bookden-server/internal/validation"
)

type testEnv struct {
	store     *sqlite.Store
	search    *search.Index
	catalog   *CatalogService
	recommend *RecommendationService
	history   *HistoryService
	users     *UserService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.New(search.Options{DataPath: dir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	validator := validation.New()

	return &testEnv{
		store:     st,
		search:    idx,
		catalog:   NewCatalogService(st, idx, validator, logger),
		recommend: NewRecommendationService(st, logger),
		history:   NewHistoryService(st, logger),
		users:     NewUserService(st, validator, logger),
	}
}

func (e *testEnv) mustCreateBook(t *testing.T, params CreateBookParams) *domain.Book {
	t.Helper()
	book, err := e.catalog.CreateBook(context.Background(), params)
	require.NoError(t, err)
	return book
}

func (e *testEnv) mustCreateUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), CreateUserParams{
		Email:       id.NewUserID() + "@example.com",
		DisplayName: "Test Reader",
	})
	require.NoError(t, err)
	return user
}

func TestCatalogService_CreateBook_Validation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.catalog.CreateBook(context.Background(), CreateBookParams{
		Author: "No Title",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestCatalogService_CreateBook_DefaultsToActive(t *testing.T) {
	env := setupTestEnv(t)

	book := env.mustCreateBook(t, CreateBookParams{
		Title:  "Untitled Draft",
		Author: "Anonymous",
	})

	assert.Equal(t, domain.BookStatusActive, book.Status)
	assert.NotEmpty(t, book.ID)
}

func TestCatalogService_GetBook_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.catalog.GetBook(context.Background(), "book-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_Browse_NoTextQuery(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreateBook(t, CreateBookParams{Title: "Alpha", Author: "A"})
	env.mustCreateBook(t, CreateBookParams{Title: "Beta", Author: "B"})

	page, err := env.catalog.Browse(context.Background(), "", store.CatalogQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Total)
	assert.Len(t, page.Items, 2)
}

func TestCatalogService_Browse_TextQueryRestricts(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreateBook(t, CreateBookParams{Title: "The Martian", Author: "Andy Weir", Genres: []string{"Science Fiction"}})
	env.mustCreateBook(t, CreateBookParams{Title: "Pride and Prejudice", Author: "Jane Austen", Genres: []string{"Romance"}})

	page, err := env.catalog.Browse(context.Background(), "Martian", store.CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "The Martian", page.Items[0].Title)
}

func TestCatalogService_Browse_TextQueryNoMatches(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreateBook(t, CreateBookParams{Title: "The Martian", Author: "Andy Weir"})

	// A query matching nothing yields an empty page, not the full catalog.
	page, err := env.catalog.Browse(context.Background(), "zzznosuchword", store.CatalogQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestCatalogService_Reindex(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreateBook(t, CreateBookParams{Title: "One", Author: "A"})
	env.mustCreateBook(t, CreateBookParams{Title: "Two", Author: "B"})

	count, err := env.catalog.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecommend_UnknownUserGetsEmptyList(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreateBook(t, CreateBookParams{Title: "Popular", Author: "A", Rating: 4.8, RatingCount: 500})

	recs, err := env.recommend.Recommend(context.Background(), "usr-ghost", 10)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_ColdStartUserGetsHighlyRated(t *testing.T) {
	env := setupTestEnv(t)

	user := env.mustCreateUser(t)

	highlyRated := env.mustCreateBook(t, CreateBookParams{Title: "Acclaimed", Author: "A", Rating: 4.6, RatingCount: 200})
	env.mustCreateBook(t, CreateBookParams{Title: "Mediocre", Author: "B", Rating: 3.2, RatingCount: 40})

	recs, err := env.recommend.Recommend(context.Background(), user.ID, 10)
	require.NoError(t, err)

	// No history means only the rating floor admits candidates.
	require.Len(t, recs, 1)
	assert.Equal(t, highlyRated.ID, recs[0].Book.ID)
}

func TestRecommend_ExcludesConsumedAndWishlisted(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.mustCreateUser(t)

	read := env.mustCreateBook(t, CreateBookParams{Title: "Already Read", Author: "Shared Author", Genres: []string{"Mystery"}, Rating: 4.9, RatingCount: 300})
	saved := env.mustCreateBook(t, CreateBookParams{Title: "Saved For Later", Author: "Shared Author", Genres: []string{"Mystery"}, Rating: 4.8, RatingCount: 300})
	fresh := env.mustCreateBook(t, CreateBookParams{Title: "New To Them", Author: "Shared Author", Genres: []string{"Mystery"}, Rating: 4.7, RatingCount: 300})

	_, err := env.history.RecordRead(ctx, user.ID, read.ID)
	require.NoError(t, err)
	require.NoError(t, env.history.AddToWishlist(ctx, user.ID, saved.ID))

	recs, err := env.recommend.Recommend(ctx, user.ID, 10)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, fresh.ID, recs[0].Book.ID)
}

func TestRecommend_ScoredAndOrdered(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.mustCreateUser(t)

	seed := env.mustCreateBook(t, CreateBookParams{Title: "Seed", Author: "Favorite Author", Genres: []string{"Fantasy"}, Rating: 4.0, RatingCount: 10})
	_, err := env.history.RecordRead(ctx, user.ID, seed.ID)
	require.NoError(t, err)

	// Same author and genre, strong rating: should outscore the stranger.
	env.mustCreateBook(t, CreateBookParams{Title: "Sequel", Author: "Favorite Author", Genres: []string{"Fantasy"}, Rating: 4.5, RatingCount: 120})
	env.mustCreateBook(t, CreateBookParams{Title: "Stranger", Author: "Unknown", Genres: []string{"History"}, Rating: 4.2, RatingCount: 50})

	recs, err := env.recommend.Recommend(ctx, user.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, "Sequel", recs[0].Book.Title)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	assert.NotEmpty(t, recs[0].Reasons)
}

func TestRecommend_LimitDefaultsWhenZero(t *testing.T) {
	env := setupTestEnv(t)

	user := env.mustCreateUser(t)

	for i := 0; i < 15; i++ {
		env.mustCreateBook(t, CreateBookParams{
			Title:       "Candidate",
			Author:      "Author",
			Rating:      4.6,
			RatingCount: 100,
		})
	}

	recs, err := env.recommend.Recommend(context.Background(), user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 10)
}

func TestHistory_RecordRead_UnknownBook(t *testing.T) {
	env := setupTestEnv(t)

	user := env.mustCreateUser(t)

	_, err := env.history.RecordRead(context.Background(), user.ID, "book-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHistory_RecordRead_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)

	book := env.mustCreateBook(t, CreateBookParams{Title: "B", Author: "A"})

	_, err := env.history.RecordRead(context.Background(), "usr-ghost", book.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHistory_ConsumedBooks_DistinctAcrossRereads(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.mustCreateUser(t)
	book := env.mustCreateBook(t, CreateBookParams{Title: "Reread Often", Author: "A"})

	for i := 0; i < 3; i++ {
		_, err := env.history.RecordRead(ctx, user.ID, book.ID)
		require.NoError(t, err)
	}

	books, err := env.history.ConsumedBooks(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestHistory_WishlistRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.mustCreateUser(t)
	book := env.mustCreateBook(t, CreateBookParams{Title: "Wanted", Author: "A"})

	require.NoError(t, env.history.AddToWishlist(ctx, user.ID, book.ID))
	// Re-adding is a no-op.
	require.NoError(t, env.history.AddToWishlist(ctx, user.ID, book.ID))

	books, err := env.history.WishlistBooks(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.NoError(t, env.history.RemoveFromWishlist(ctx, user.ID, book.ID))

	books, err = env.history.WishlistBooks(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.users.CreateUser(context.Background(), CreateUserParams{
		Email: "not-an-email",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
