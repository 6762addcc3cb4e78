// Package api provides the HTTP API server and handlers for the BookDen application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookdenapp/bookden-server/internal/config"
	"github.com/bookdenapp/bookden-server/internal/ratelimit"
	"github.com/bookdenapp/bookden-server/internal/service"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          store.Store
	catalogService *service.CatalogService
	recService     *service.RecommendationService
	historyService *service.HistoryService
	userService    *service.UserService
	limiter        *ratelimit.KeyedLimiter
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// limiter may be nil to disable rate limiting.
func NewServer(
	st store.Store,
	catalogService *service.CatalogService,
	recService *service.RecommendationService,
	historyService *service.HistoryService,
	userService *service.UserService,
	limiter *ratelimit.KeyedLimiter,
	cfg config.ServerConfig,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:          st,
		catalogService: catalogService,
		recService:     recService,
		historyService: historyService,
		userService:    userService,
		limiter:        limiter,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if s.limiter != nil {
		s.router.Use(s.rateLimit)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Catalog.
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Get("/{id}", s.handleGetBook)
		})

		// Full-text search.
		r.Get("/search", s.handleSearch)

		// Users, reading history, wishlists, recommendations.
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Get("/{id}/recommendations", s.handleGetRecommendations)
			r.Get("/{id}/history", s.handleGetHistory)
			r.Post("/{id}/history", s.handleRecordRead)
			r.Get("/{id}/wishlist", s.handleGetWishlist)
			r.Post("/{id}/wishlist", s.handleAddToWishlist)
			r.Delete("/{id}/wishlist/{bookID}", s.handleRemoveFromWishlist)
		})

		// Admin.
		r.Post("/admin/search/reindex", s.handleReindex)
	})
}
