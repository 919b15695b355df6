// Package store reads civic records from the database. Every method takes the
// request-scoped db.Handler it should run against; stores hold no state.
package store

import (
	"context"
	"errors"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a slug matches several organizations
	// whose names differ only in Unicode normalization form.
	ErrAmbiguous = errors.New("ambiguous organization name")
)

// Store bundles the per-entity stores.
type Store struct {
	Organizations *OrganizationStore
	Projects      *ProjectStore
	Events        *EventStore
	Stories       *StoryStore
	Issues        *IssueStore
	Labels        *LabelStore
}

// New returns a Store.
func New() *Store {
	return &Store{
		Organizations: &OrganizationStore{},
		Projects:      &ProjectStore{},
		Events:        &EventStore{},
		Stories:       &StoryStore{},
		Issues:        &IssueStore{},
		Labels:        &LabelStore{},
	}
}

// selection is one paginated SELECT over a single table plus to-one joins.
type selection struct {
	columns string
	from    string // table with alias
	where   *query.Clause
	orderBy string
}

// page runs the count and the windowed fetch for sel. Joins are to-one, so
// COUNT(*) over the joined rows equals the number of matching base rows.
func page[T any](ctx context.Context, h db.Handler, sel selection, req query.PageRequest) ([]T, int, error) {
	if sel.where == nil {
		sel.where = &query.Clause{}
	}
	tail := sel.where.String()
	args := sel.where.Args()

	var total int
	if err := h.GetContext(ctx, &total, h.Rebind(`SELECT COUNT(*) FROM `+sel.from+tail), args...); err != nil {
		return nil, 0, err
	}

	items := []T{}
	if total == 0 || req.Offset() >= total {
		return items, total, nil
	}

	q := `SELECT ` + sel.columns + ` FROM ` + sel.from + tail +
		` ORDER BY ` + sel.orderBy + ` LIMIT ? OFFSET ?`
	fetchArgs := append(append([]interface{}{}, args...), req.PerPage, req.Offset())
	if err := h.SelectContext(ctx, &items, h.Rebind(q), fetchArgs...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// limited runs sel with a fixed LIMIT and no count.
func limited[T any](ctx context.Context, h db.Handler, sel selection, limit int) ([]T, error) {
	if sel.where == nil {
		sel.where = &query.Clause{}
	}
	q := `SELECT ` + sel.columns + ` FROM ` + sel.from + sel.where.String() +
		` ORDER BY ` + sel.orderBy + ` LIMIT ?`
	args := append(append([]interface{}{}, sel.where.Args()...), limit)

	items := []T{}
	if err := h.SelectContext(ctx, &items, h.Rebind(q), args...); err != nil {
		return nil, err
	}
	return items, nil
}
