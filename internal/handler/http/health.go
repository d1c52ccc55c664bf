package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"newsportal/internal/handler/http/respond"
)

// HealthResponse represents the JSON response of the health endpoint.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler answers liveness probes, checking database connectivity.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"database": "healthy"},
	}
	code := http.StatusOK

	if err := h.DB.PingContext(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Checks["database"] = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respond.JSON(w, code, resp)
}
