package store

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

// Shared by the organization scope and the project_* filters so the clause
// joins projects only once.
var issueProjectJoin = query.Join{Table: "projects p", On: "p.id = i.project_id"}

// IssueFilters are the query parameters accepted by issue lists.
var IssueFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "i.id", Kind: query.Int},
	{Param: "title", Column: "i.title"},
	{Param: "body", Column: "i.body"},
	{Param: "project_name", Column: "p.name", Join: &issueProjectJoin},
	{Param: "project_type", Column: "p.type", Join: &issueProjectJoin},
	{Param: "project_organization_name", Column: "p.organization_name", Join: &issueProjectJoin},
}}

// IssueStore reads issues.
type IssueStore struct{}

// List returns one page of issues in id order. An empty org lists issues of
// every organization.
func (*IssueStore) List(ctx context.Context, h db.Handler, org string, values url.Values, req query.PageRequest) ([]Issue, int, error) {
	c := IssueFilters.Compile(values)
	if org != "" {
		c.Join(issueProjectJoin).Where("p.organization_name = ?", org)
	}
	return page[Issue](ctx, h, selection{
		columns: issueColumns,
		from:    "issues i",
		where:   c,
		orderBy: "i.id",
	}, req)
}

// ListByLabels returns one page of the issues that carry every label in
// names. An empty list matches nothing.
func (*IssueStore) ListByLabels(ctx context.Context, h db.Handler, names []string, values url.Values, req query.PageRequest) ([]Issue, int, error) {
	c := IssueFilters.Compile(values)
	if len(names) == 0 {
		c.Where("1 = 0")
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
		args := make([]interface{}, 0, len(names)+1)
		for _, n := range names {
			args = append(args, n)
		}
		args = append(args, len(names))
		c.Where(`i.id IN (
			SELECT il.issue_id FROM issue_labels il
			JOIN labels l ON l.id = il.label_id
			WHERE l.name IN (`+placeholders+`)
			GROUP BY il.issue_id
			HAVING COUNT(DISTINCT l.name) = ?)`, args...)
	}
	return page[Issue](ctx, h, selection{
		columns: issueColumns,
		from:    "issues i",
		where:   c,
		orderBy: "i.id",
	}, req)
}

// ListByProjects returns every issue of the given projects keyed by project id.
func (*IssueStore) ListByProjects(ctx context.Context, h db.Handler, projectIDs []int64) (map[int64][]Issue, error) {
	out := make(map[int64][]Issue, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+issueColumns+` FROM issues i WHERE i.project_id IN (?) ORDER BY i.id`, projectIDs)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	if err := h.SelectContext(ctx, &issues, h.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, is := range issues {
		out[is.ProjectID] = append(out[is.ProjectID], is)
	}
	return out, nil
}

// Get returns the issue with the given id.
func (*IssueStore) Get(ctx context.Context, h db.Handler, id int64) (*Issue, error) {
	var is Issue
	err := h.GetContext(ctx, &is, h.Rebind(`SELECT `+issueColumns+` FROM issues i WHERE i.id = ?`), id)
	if err := db.WrapError(err); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &is, nil
}

// ParseLabels splits a comma-separated label list, trimming blanks and
// dropping duplicates while keeping first-seen order.
func ParseLabels(raw string) []string {
	seen := map[string]bool{}
	var names []string
	for _, n := range strings.Split(raw, ",") {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}
