package api

import (
	"net/http"
	"time"

	"github.com/bookdenapp/bookden-server/internal/http/response"
)

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse contains health check data.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

// handleHealthCheck reports overall server health with per-component checks.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	start := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		components["store"] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
		overall = "unhealthy"
	} else {
		components["store"] = ComponentHealth{
			Status:  "healthy",
			Latency: time.Since(start).String(),
		}
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}

	response.JSON(w, status, HealthResponse{
		Status:     overall,
		Components: components,
	}, s.logger)
}
