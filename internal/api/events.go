package api

import (
	"context"
	"net/http"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

// ListEvents returns events of every organization in view.
// GET /api/events, /api/events/upcoming_events
func (h *handler) ListEvents(view store.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := h.pageRequest(r)
		rn := renderer{base: baseURL(r)}
		q := store.EventQuery{View: view, Now: h.reference()}

		var (
			records []eventRecord
			total   int
		)
		err := h.read(r.Context(), func(tx db.Handler) error {
			events, n, err := h.store.Events.List(r.Context(), tx, q, r.URL.Query(), req)
			if err != nil {
				return err
			}
			total = n
			records, err = h.eventRecords(r.Context(), tx, rn, events)
			return err
		})
		if err != nil {
			fail(w, r, err)
			return
		}
		writePage(w, r, records, req, total)
	}
}

// GetEvent returns one event.
// GET /api/events/{id}
func (h *handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}
	rn := renderer{base: baseURL(r)}

	var rec eventRecord
	err := h.read(r.Context(), func(tx db.Handler) error {
		e, err := h.store.Events.Get(r.Context(), tx, id)
		if err != nil {
			return err
		}
		records, err := h.eventRecords(r.Context(), tx, rn, []store.Event{*e})
		if err != nil {
			return err
		}
		rec = records[0]
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) eventRecords(ctx context.Context, tx db.Handler, rn renderer, events []store.Event) ([]eventRecord, error) {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.OrganizationName)
	}
	orgs, err := h.store.Organizations.GetByNames(ctx, tx, unique(names))
	if err != nil {
		return nil, err
	}
	records := make([]eventRecord, 0, len(events))
	for i := range events {
		records = append(records, rn.event(&events[i], orgs[events[i].OrganizationName]))
	}
	return records, nil
}
