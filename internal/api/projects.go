package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

// ListProjects returns projects, most recently updated first.
// GET /api/projects
func (h *handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []projectRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		projects, n, err := h.store.Projects.List(r.Context(), tx, r.URL.Query(), req)
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

// GetProject returns one project with its organization and issues.
// GET /api/projects/{id}
func (h *handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}
	rn := renderer{base: baseURL(r)}

	var rec projectRecord
	err := h.read(r.Context(), func(tx db.Handler) error {
		p, err := h.store.Projects.Get(r.Context(), tx, id)
		if err != nil {
			return err
		}
		records, err := h.projectRecords(r.Context(), tx, rn, []store.Project{*p})
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

// projectRecords renders projects with their organizations and issues,
// batch-loading both.
func (h *handler) projectRecords(ctx context.Context, tx db.Handler, rn renderer, projects []store.Project) ([]projectRecord, error) {
	names := make([]string, 0, len(projects))
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.OrganizationName)
		ids = append(ids, p.ID)
	}
	orgs, err := h.store.Organizations.GetByNames(ctx, tx, unique(names))
	if err != nil {
		return nil, err
	}
	issues, err := h.store.Issues.ListByProjects(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	var issueIDs []int64
	for _, list := range issues {
		for _, is := range list {
			issueIDs = append(issueIDs, is.ID)
		}
	}
	labels, err := h.store.Labels.ForIssues(ctx, tx, issueIDs)
	if err != nil {
		return nil, err
	}

	records := make([]projectRecord, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		embedded := make([]issueRecord, 0, len(issues[p.ID]))
		for j := range issues[p.ID] {
			is := &issues[p.ID][j]
			embedded = append(embedded, rn.issue(is, nil, nil, labels[is.ID]))
		}
		records = append(records, rn.project(p, orgs[p.OrganizationName], embedded))
	}
	return records, nil
}

// pathID parses the {id} path parameter. Anything but a positive integer
// cannot name a row.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func unique(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	out := ss[:0]
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
