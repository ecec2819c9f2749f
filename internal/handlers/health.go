package handlers

import (
	"net/http"
	"time"
)

// HealthResponse reports service liveness.
// swagger:model HealthResponse
type HealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Environment string  `json:"environment"`
	Uptime      float64 `json:"uptime"` // Seconds since start
}

// NewHealthHandler returns a liveness probe handler.
// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler(environment string) http.HandlerFunc {
	start := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:      "OK",
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Environment: environment,
			Uptime:      time.Since(start).Seconds(),
		})
	}
}

// IndexResponse lists the API surface.
// swagger:model IndexResponse
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewIndexHandler returns the root endpoint index.
func NewIndexHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, IndexResponse{
			Message: "Flower Shop API",
			Version: version,
			Endpoints: map[string]string{
				"auth":    "/auth/*",
				"users":   "/users/*",
				"cart":    "/cart/*",
				"flowers": "/flowers",
				"admin":   "/admin/*",
				"contact": "/contact",
				"health":  "/health",
			},
		})
	}
}

// NewNotFoundHandler returns the JSON 404 fallback.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	}
}
