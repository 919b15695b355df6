package store

import (
	"context"
	"net/url"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

// LabelFilters are the query parameters accepted by label lists.
var LabelFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "l.id", Kind: query.Int},
	{Param: "name", Column: "l.name"},
	{Param: "color", Column: "l.color"},
}}

// LabelStore reads labels.
type LabelStore struct{}

// List returns one page of labels in id order.
func (*LabelStore) List(ctx context.Context, h db.Handler, values url.Values, req query.PageRequest) ([]Label, int, error) {
	return page[Label](ctx, h, selection{
		columns: labelColumns,
		from:    "labels l",
		where:   LabelFilters.Compile(values),
		orderBy: "l.id",
	}, req)
}

// ForIssues returns the labels of each given issue keyed by issue id.
func (*LabelStore) ForIssues(ctx context.Context, h db.Handler, issueIDs []int64) (map[int64][]Label, error) {
	out := make(map[int64][]Label, len(issueIDs))
	if len(issueIDs) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT il.issue_id, `+labelColumns+` FROM issue_labels il
		JOIN labels l ON l.id = il.label_id
		WHERE il.issue_id IN (?)
		ORDER BY il.issue_id, l.id`, issueIDs)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		IssueID int64 `db:"issue_id"`
		Label
	}
	if err := h.SelectContext(ctx, &rows, h.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.IssueID] = append(out[r.IssueID], r.Label)
	}
	return out, nil
}
