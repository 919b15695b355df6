package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

// ListIssues returns issues in id order.
// GET /api/issues
func (h *handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	h.listIssues(w, r, func(ctx context.Context, tx db.Handler) ([]store.Issue, int, error) {
		return h.store.Issues.List(ctx, tx, "", r.URL.Query(), h.pageRequest(r))
	})
}

// IssuesByLabels returns issues carrying every label in the comma-separated
// {labels} segment.
// GET /api/issues/labels/{labels}
func (h *handler) IssuesByLabels(w http.ResponseWriter, r *http.Request) {
	names := store.ParseLabels(chi.URLParam(r, "labels"))
	h.listIssues(w, r, func(ctx context.Context, tx db.Handler) ([]store.Issue, int, error) {
		return h.store.Issues.ListByLabels(ctx, tx, names, r.URL.Query(), h.pageRequest(r))
	})
}

func (h *handler) listIssues(w http.ResponseWriter, r *http.Request, load func(context.Context, db.Handler) ([]store.Issue, int, error)) {
	req := h.pageRequest(r)
	rn := renderer{base: baseURL(r)}

	var (
		records []issueRecord
		total   int
	)
	err := h.read(r.Context(), func(tx db.Handler) error {
		issues, n, err := load(r.Context(), tx)
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

// GetIssue returns one issue with its project and labels.
// GET /api/issues/{id}
func (h *handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}
	rn := renderer{base: baseURL(r)}

	var rec issueRecord
	err := h.read(r.Context(), func(tx db.Handler) error {
		is, err := h.store.Issues.Get(r.Context(), tx, id)
		if err != nil {
			return err
		}
		records, err := h.issueRecords(r.Context(), tx, rn, []store.Issue{*is})
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

func (h *handler) issueRecords(ctx context.Context, tx db.Handler, rn renderer, issues []store.Issue) ([]issueRecord, error) {
	ids := make([]int64, 0, len(issues))
	projectIDs := make([]int64, 0, len(issues))
	for _, is := range issues {
		ids = append(ids, is.ID)
		projectIDs = append(projectIDs, is.ProjectID)
	}
	projects, err := h.store.Projects.GetByIDs(ctx, tx, projectIDs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.OrganizationName)
	}
	orgs, err := h.store.Organizations.GetByNames(ctx, tx, unique(names))
	if err != nil {
		return nil, err
	}
	labels, err := h.store.Labels.ForIssues(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	records := make([]issueRecord, 0, len(issues))
	for i := range issues {
		is := &issues[i]
		var org *store.Organization
		p := projects[is.ProjectID]
		if p != nil {
			org = orgs[p.OrganizationName]
		}
		records = append(records, rn.issue(is, p, org, labels[is.ID]))
	}
	return records, nil
}
