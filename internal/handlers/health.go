// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports API and database reachability

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

// Health returns API health status including the database.
// An unreachable database still answers 200 so the client can show the detail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "ok", Database: "ok"}

	if h.db == nil {
		resp.Database = "not_configured"
	} else if err := h.db.Ping(r.Context()); err != nil {
		zap.L().Warn("database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "unavailable"
	}

	writeOK(w, "", resp)
}
