package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookdenapp/bookden-server/internal/http/response"
)

// bookRef is the request body for history and wishlist mutations.
type bookRef struct {
	BookID string `json:"book_id"`
}

// handleRecordRead appends a reading event for the user.
func (s *Server) handleRecordRead(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req bookRef
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.BookID == "" {
		response.BadRequest(w, "book_id is required", s.logger)
		return
	}

	event, err := s.historyService.RecordRead(r.Context(), userID, req.BookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, event, s.logger)
}

// handleGetHistory returns the distinct books the user has read.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	books, err := s.historyService.ConsumedBooks(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleAddToWishlist saves a book on the user's wishlist.
func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req bookRef
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.BookID == "" {
		response.BadRequest(w, "book_id is required", s.logger)
		return
	}

	if err := s.historyService.AddToWishlist(r.Context(), userID, req.BookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRemoveFromWishlist deletes a wishlist entry.
func (s *Server) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	bookID := chi.URLParam(r, "bookID")

	if err := s.historyService.RemoveFromWishlist(r.Context(), userID, bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleGetWishlist returns the books on the user's wishlist.
func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	books, err := s.historyService.WishlistBooks(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}
