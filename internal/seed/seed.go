// Package seed populates a BookDen store with a starter catalog and demo
// readers. It backs the seed command and is handy in integration tests.
package seed

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"

	"github.com/bookdenapp/bookden-server/internal/domain"
	apperrors "github.com/bookdenapp/bookden-server/internal/errors"
	"github.com/bookdenapp/bookden-server/internal/id"
	"github.com/bookdenapp/bookden-server/internal/search"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// Options controls what gets seeded.
type Options struct {
	BooksFile   string // Optional JSON file with books; empty uses the built-in set
	CreateUsers bool   // Also create demo readers with reading history
}

// Result summarizes what was written.
type Result struct {
	Books int
	Users int
}

// Run seeds the store and search index. Books that already exist (by ID
// collision) are skipped rather than failing the run.
func Run(ctx context.Context, st store.Store, idx *search.Index, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	books, err := loadBooks(opts.BooksFile)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	created := make([]*domain.Book, 0, len(books))

	for _, book := range books {
		if book.ID == "" {
			book.ID = id.NewBookID()
		}
		book.InitTimestamps()

		if err := st.CreateBook(ctx, book); err != nil {
			if apperrors.Is(err, apperrors.ErrAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("create book %q: %w", book.Title, err)
		}
		created = append(created, book)
	}
	result.Books = len(created)

	if len(created) > 0 && idx != nil {
		if err := idx.IndexBooks(created); err != nil {
			return nil, fmt.Errorf("index seeded books: %w", err)
		}
	}

	if opts.CreateUsers {
		users, err := seedUsers(ctx, st, created)
		if err != nil {
			return nil, err
		}
		result.Users = users
	}

	logger.Info("seed complete", "books", result.Books, "users", result.Users)
	return result, nil
}

// loadBooks returns the fixture catalog, or decodes one from a JSON file.
func loadBooks(path string) ([]*domain.Book, error) {
	if path == "" {
		return Catalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read books file: %w", err)
	}

	var books []*domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse books file: %w", err)
	}
	return books, nil
}

// seedUsers creates two demo readers with contrasting tastes so
// recommendations have something to chew on.
func seedUsers(ctx context.Context, st store.Store, books []*domain.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	readers := []struct {
		email   string
		name    string
		genres  []string
		history int
	}{
		{"ada@bookden.example", "Ada", []string{"Science Fiction", "Mystery"}, 3},
		{"basil@bookden.example", "Basil", []string{"Fantasy"}, 2},
	}

	created := 0
	for _, r := range readers {
		user := &domain.User{
			ID:          id.NewUserID(),
			Email:       r.email,
			DisplayName: r.name,
		}
		user.InitTimestamps()

		if err := st.CreateUser(ctx, user); err != nil {
			if apperrors.Is(err, apperrors.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("create user %s: %w", r.email, err)
		}
		created++

		// Mark books in the reader's favorite genres as read.
		read := 0
		for _, book := range books {
			if read >= r.history {
				break
			}
			if !hasAnyGenre(book, r.genres) {
				continue
			}
			event := &domain.ReadingEvent{
				ID:         id.NewEventID(),
				UserID:     user.ID,
				BookID:     book.ID,
				OccurredAt: user.CreatedAt,
			}
			if err := st.RecordReadingEvent(ctx, event); err != nil {
				return created, fmt.Errorf("record history for %s: %w", r.email, err)
			}
			read++
		}
	}

	return created, nil
}

func hasAnyGenre(book *domain.Book, genres []string) bool {
	for _, g := range genres {
		if book.HasGenre(g) {
			return true
		}
	}
	return false
}
