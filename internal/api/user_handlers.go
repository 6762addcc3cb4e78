package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookdenapp/bookden-server/internal/http/response"
	"github.com/bookdenapp/bookden-server/internal/service"
)

// handleCreateUser registers a new reader.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var params service.CreateUserParams
	if err := json.UnmarshalRead(r.Body, &params); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	user, err := s.userService.CreateUser(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, user, s.logger)
}

// handleGetUser returns a reader by ID.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}
