// Package service provides the business logic layer for the BookDen catalog,
// reading history, and recommendations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookdenapp/bookden-server/internal/domain"
	apperrors "github.com/bookdenapp/bookden-server/internal/errors"
	"github.com/bookdenapp/bookden-server/internal/id"
	"github.com/bookdenapp/bookden-server/internal/search"
	"github.com/bookdenapp/bookden-server/internal/store"
	"github.com/bookdenapp/bookden-server/internal/validation"
)

// CatalogService orchestrates catalog browsing, lookup, and search.
type CatalogService struct {
	store     store.Store
	search    *search.Index
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st store.Store, idx *search.Index, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     st,
		search:    idx,
		validator: validator,
		logger:    logger,
	}
}

// CreateBookParams describes a book to add to the catalog.
type CreateBookParams struct {
	Title       string                         `json:"title" validate:"required,max=512"`
	Author      string                         `json:"author" validate:"required,max=256"`
	Description string                         `json:"description" validate:"max=8192"`
	Genres      []string                       `json:"genres" validate:"omitempty,dive,required"`
	Status      string                         `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
	Rating      float64                        `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int                            `json:"rating_count" validate:"gte=0"`
	Prices      map[domain.PriceFormat]float64 `json:"prices" validate:"omitempty"`
}

// CreateBook validates, stores, and indexes a new catalog book.
func (s *CatalogService) CreateBook(ctx context.Context, params CreateBookParams) (*domain.Book, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	status := domain.BookStatus(params.Status)
	if status == "" {
		status = domain.BookStatusActive
	}

	book := &domain.Book{
		ID:            id.NewBookID(),
		Title:         params.Title,
		Author:        params.Author,
		Description:   params.Description,
		Genres:        params.Genres,
		Status:        status,
		RatingAverage: params.Rating,
		RatingCount:   params.RatingCount,
		Prices:        params.Prices,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if err := s.search.IndexBook(book); err != nil {
		// The book is persisted; the index catches up on the next rebuild.
		s.logger.Warn("failed to index new book", "book_id", book.ID, "error", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// GetBook returns a single book by ID.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", bookID, err)
	}
	return book, nil
}

// Browse lists active catalog books with filtering, sorting, and pagination.
// A non-empty text query restricts results to full-text matches over title,
// author, description, and genres before the structured filters apply.
func (s *CatalogService) Browse(ctx context.Context, text string, query store.CatalogQuery) (*store.Page[*domain.Book], error) {
	if text != "" {
		ids, err := s.search.MatchIDs(ctx, text)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "search index query failed")
		}
		// Empty non-nil means the text matched nothing; the store returns
		// an empty page rather than the unrestricted catalog.
		query.MatchIDs = ids
	}

	page, err := s.store.ListBooks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return page, nil
}

// Search runs a relevance-ranked full-text query and returns raw hits with
// optional highlights. Unlike Browse it does not join back to the store.
func (s *CatalogService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if params.Limit <= 0 {
		params.Limit = store.DefaultPageSize
	}

	result, err := s.search.Search(ctx, params)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "search failed")
	}
	return result, nil
}

// Reindex rebuilds the search index from the full active catalog.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	books, err := s.store.ListAllActiveBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog for reindex: %w", err)
	}

	if err := s.search.Rebuild(books); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	s.logger.Info("search index rebuilt", "books", len(books))
	return len(books), nil
}
