package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookdenapp/bookden-server/internal/domain"
)

// setupTestStore opens a fresh store in a temp directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateBook inserts a book with sensible defaults.
func mustCreateBook(t *testing.T, s *Store, b *domain.Book) *domain.Book {
	t.Helper()

	if b.Status == "" {
		b.Status = domain.BookStatusActive
	}
	b.InitTimestamps()
	require.NoError(t, s.CreateBook(context.Background(), b))
	return b
}

// mustCreateUser inserts a user with sensible defaults.
func mustCreateUser(t *testing.T, s *Store, userID string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:          userID,
		Email:       userID + "@test.com",
		DisplayName: "Test " + userID,
	}
	u.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestOpen_AppliesSchema(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Ping(context.Background()))

	// Schema is idempotent: a second open against the same file works.
	require.NoError(t, s.Close())
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 123456789, time.UTC)

	parsed, err := parseTime(formatTime(now))
	require.NoError(t, err)
	require.True(t, now.Equal(parsed))
}
