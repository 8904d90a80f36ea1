package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/ome/status-dashboard/pkg/domain/types"
)

// handleHealth handles health check requests
func (h *snapshotHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:   "healthy",
		Service:  "status-dashboard",
		Version:  types.Version,
		Snapshot: h.exists(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
