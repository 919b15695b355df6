package api

import (
	"context"
	"net/http"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

// ListStories returns stories in creation order.
// GET /api/stories
func (h *handler) ListStories(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []storyRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		stories, n, err := h.store.Stories.List(r.Context(), tx, "", r.URL.Query(), req)
		if err != nil {
			return err
		}
		total = n
		records, err = h.storyRecords(r.Context(), tx, rn, stories)
		return err
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, r, records, req, total)
}

// GetStory returns one story.
// GET /api/stories/{id}
func (h *handler) GetStory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}
	rn := renderer{base: baseURL(r)}

	var rec storyRecord
	err := h.read(r.Context(), func(tx db.Handler) error {
		s, err := h.store.Stories.Get(r.Context(), tx, id)
		if err != nil {
			return err
		}
		records, err := h.storyRecords(r.Context(), tx, rn, []store.Story{*s})
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

func (h *handler) storyRecords(ctx context.Context, tx db.Handler, rn renderer, stories []store.Story) ([]storyRecord, error) {
	names := make([]string, 0, len(stories))
	for _, s := range stories {
		names = append(names, s.OrganizationName)
	}
	orgs, err := h.store.Organizations.GetByNames(ctx, tx, unique(names))
	if err != nil {
		return nil, err
	}
	records := make([]storyRecord, 0, len(stories))
	for i := range stories {
		records = append(records, rn.story(&stories[i], orgs[stories[i].OrganizationName]))
	}
	return records, nil
}
