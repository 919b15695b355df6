package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

// ListOrganizations returns organizations in id order.
// GET /api/organizations
func (h *handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}
	now := h.reference()

	var (
		records []organizationRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		orgs, n, err := h.store.Organizations.List(r.Context(), tx, r.URL.Query(), req)
		if err != nil {
			return err
		}
		total = n
		records = make([]organizationRecord, 0, len(orgs))
		for i := range orgs {
			cur, err := h.current(r.Context(), tx, orgs[i].Name, now)
			if err != nil {
				return err
			}
			records = append(records, rn.organization(&orgs[i], cur))
		}
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, r, records, req, total)
}

// GetOrganization returns one organization by name or slug.
// GET /api/organizations/{name}
func (h *handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	rn := renderer{base: baseURL(r)}
	now := h.reference()

	var rec organizationRecord
	err := h.read(r.Context(), func(tx db.Handler) error {
		org, err := h.organization(r, tx)
		if err != nil {
			return err
		}
		cur, err := h.current(r.Context(), tx, org.Name, now)
		if err != nil {
			return err
		}
		rec = rn.organization(org, cur)
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// current loads the organization's current events, projects and stories.
func (h *handler) current(ctx context.Context, tx db.Handler, org string, now time.Time) (current, error) {
	var (
		cur current
		err error
	)
	if cur.events, err = h.store.Events.Window(ctx, tx, org, store.CurrentEvents, now); err != nil {
		return cur, err
	}
	if cur.projects, err = h.store.Projects.Current(ctx, tx, org, store.CurrentProjects); err != nil {
		return cur, err
	}
	if cur.stories, err = h.store.Stories.Current(ctx, tx, org, store.CurrentStories); err != nil {
		return cur, err
	}
	return cur, nil
}

// organization resolves the {name} path parameter inside tx.
func (h *handler) organization(r *http.Request, tx db.Handler) (*store.Organization, error) {
	return h.store.Organizations.GetBySlug(r.Context(), tx, chi.URLParam(r, "name"))
}

// OrganizationProjects lists the projects of one organization.
// GET /api/organizations/{name}/projects
func (h *handler) OrganizationProjects(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []projectRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		org, err := h.organization(r, tx)
		if err != nil {
			return err
		}
		projects, n, err := h.store.Projects.ListByOrganization(r.Context(), tx, org.Name, r.URL.Query(), req)
		if err != nil {
			return err
		}
		total = n
		records, err = h.projectRecords(r.Context(), tx, rn, projects)
		return err
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, r, records, req, total)
}

// OrganizationEvents lists the events of one organization in view.
// GET /api/organizations/{name}/events, /upcoming_events, /past_events
func (h *handler) OrganizationEvents(view store.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := h.pageRequest(r)
		rn := renderer{base: baseURL(r)}
		now := h.reference()

		var (
			records []eventRecord
			total   int
		)
		err := h.read(r.Context(), func(tx db.Handler) error {
			org, err := h.organization(r, tx)
			if err != nil {
				return err
			}
			q := store.EventQuery{Organization: org.Name, View: view, Now: now}
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

// OrganizationStories lists the stories of one organization.
// GET /api/organizations/{name}/stories
func (h *handler) OrganizationStories(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []storyRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		org, err := h.organization(r, tx)
		if err != nil {
			return err
		}
		stories, n, err := h.store.Stories.List(r.Context(), tx, org.Name, r.URL.Query(), req)
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

// OrganizationIssues lists the issues of every project of one organization.
// GET /api/organizations/{name}/issues
func (h *handler) OrganizationIssues(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []issueRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		org, err := h.organization(r, tx)
		if err != nil {
			return err
		}
		issues, n, err := h.store.Issues.List(r.Context(), tx, org.Name, r.URL.Query(), req)
		if err != nil {
			return err
		}
		total = n
		records, err = h.issueRecords(r.Context(), tx, rn, issues)
		return err
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, r, records, req, total)
}
