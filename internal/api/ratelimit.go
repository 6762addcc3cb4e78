package api

import (
	"net/http"

	"github.com/bookdenapp/bookden-server/internal/http/response"
)

// rateLimit rejects requests over the per-client allowance with 429.
// Keys on client IP; middleware.RealIP has already resolved proxy headers
// into RemoteAddr by the time this runs.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !s.limiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns RemoteAddr with any port stripped.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
