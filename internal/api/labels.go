package api

import (
	"net/http"

	"github.com/joestump/civic-api/internal/db"
)

// ListLabels returns labels in id order.
// GET /api/labels
func (h *handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)

	var (
		records []labelRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		labels, n, err := h.store.Labels.List(r.Context(), tx, r.URL.Query(), req)
		if err != nil {
			return err
		}
		total = n
		records = make([]labelRecord, 0, len(labels))
		for _, l := range labels {
			records = append(records, label(l))
		}
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, r, records, req, total)
}
