package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports storage reachability. Implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /api/v1/health. It reports degraded when the
// database does not answer within a short deadline.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		sendJSON(w, healthResponse{Status: "degraded"}, http.StatusServiceUnavailable)
		return
	}
	sendJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
