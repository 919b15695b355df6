package api

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/joestump/civic-api/internal/build"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health reports whether the database is reachable.
// GET /healthz
func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		log.FromContext(r.Context()).Error("health check failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable", "UNAVAILABLE")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: build.Version})
}
