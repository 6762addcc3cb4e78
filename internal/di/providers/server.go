package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/bookdenapp/bookden-server/internal/api"
	"github.com/bookdenapp/bookden-server/internal/config"
	"github.com/bookdenapp/bookden-server/internal/logger"
	"github.com/bookdenapp/bookden-server/internal/ratelimit"
	"github.com/bookdenapp/bookden-server/internal/service"
)

// RateLimiterHandle wraps the keyed limiter with shutdown capability.
// The limiter may be nil when rate limiting is disabled.
type RateLimiterHandle struct {
	*ratelimit.KeyedLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.KeyedLimiter != nil {
		h.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client request limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	log.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	return &RateLimiterHandle{
		KeyedLimiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	catalogService := do.MustInvoke[*service.CatalogService](i)
	recService := do.MustInvoke[*service.RecommendationService](i)
	historyService := do.MustInvoke[*service.HistoryService](i)
	userService := do.MustInvoke[*service.UserService](i)

	handler := api.NewServer(
		storeHandle.Store,
		catalogService,
		recService,
		historyService,
		userService,
		limiterHandle.KeyedLimiter,
		cfg.Server,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
