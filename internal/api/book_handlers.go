package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookdenapp/bookden-server/internal/http/response"
	"github.com/bookdenapp/bookden-server/internal/service"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// handleListBooks browses the catalog with filtering, sorting, and
// pagination. An optional "q" parameter restricts results to full-text
// matches before the structured filters apply.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	page, err := queryInt(r, "page", 1)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}
	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}
	minRating, err := queryFloat(r, "min_rating")
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}
	maxPrice, err := queryFloat(r, "max_price")
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	query := store.CatalogQuery{
		Page:          page,
		PageSize:      pageSize,
		Genre:         params.Get("genre"),
		Author:        params.Get("author"),
		MinRating:     minRating,
		MaxPrice:      maxPrice,
		SortField:     params.Get("sort"),
		SortDirection: params.Get("order"),
	}

	result, err := s.catalogService.Browse(ctx, params.Get("q"), query)
	if err != nil {
		s.logger.Error("Failed to list books", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleGetBook returns a single book by ID.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	book, err := s.catalogService.GetBook(r.Context(), bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleCreateBook adds a new book to the catalog.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var params service.CreateBookParams
	if err := json.UnmarshalRead(r.Body, &params); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.catalogService.CreateBook(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}
