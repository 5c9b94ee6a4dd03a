package controllers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	h "guestportal/internal/delivery/http/helpers"
)

const healthPingTimeout = 2 * time.Second

// HealthResponse is the response body for GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

type HealthController struct {
	Logger *slog.Logger
	DB     *sql.DB
}

func NewHealthController(logger *slog.Logger, db *sql.DB) *HealthController {
	return &HealthController{
		Logger: logger,
		DB:     db,
	}
}

// Check godoc
// @Summary Health check
// @Description Report service health including database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	statusCode := http.StatusOK

	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		statusCode = http.StatusServiceUnavailable
	}

	h.WriteJSON(w, statusCode, resp)
}
