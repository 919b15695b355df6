package store

import (
	"context"
	"errors"
	"net/url"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

var projectOrganizationJoin = query.Join{Table: "organizations o", On: "o.name = p.organization_name"}

// ProjectFilters are the query parameters accepted by project lists.
var ProjectFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "p.id", Kind: query.Int},
	{Param: "name", Column: "p.name"},
	{Param: "type", Column: "p.type"},
	{Param: "description", Column: "p.description"},
	{Param: "categories", Column: "p.categories"},
	{Param: "organization_name", Column: "p.organization_name"},
	{Param: "organization_type", Column: "o.type", Join: &projectOrganizationJoin},
	{Param: "organization_city", Column: "o.city", Join: &projectOrganizationJoin},
}}

// Most recently updated first; projects never updated sort last.
const projectOrder = "(p.last_updated IS NULL), p.last_updated DESC, p.id"

// ProjectStore reads projects.
type ProjectStore struct{}

// List returns one page of projects across all organizations.
func (*ProjectStore) List(ctx context.Context, h db.Handler, values url.Values, req query.PageRequest) ([]Project, int, error) {
	return page[Project](ctx, h, selection{
		columns: projectColumns,
		from:    "projects p",
		where:   ProjectFilters.Compile(values),
		orderBy: projectOrder,
	}, req)
}

// ListByOrganization returns one page of the projects owned by org.
func (*ProjectStore) ListByOrganization(ctx context.Context, h db.Handler, org string, values url.Values, req query.PageRequest) ([]Project, int, error) {
	return page[Project](ctx, h, selection{
		columns: projectColumns,
		from:    "projects p",
		where:   ProjectFilters.Compile(values).Where("p.organization_name = ?", org),
		orderBy: projectOrder,
	}, req)
}

// Current returns the limit most recently updated projects of org.
func (*ProjectStore) Current(ctx context.Context, h db.Handler, org string, limit int) ([]Project, error) {
	return limited[Project](ctx, h, selection{
		columns: projectColumns,
		from:    "projects p",
		where:   (&query.Clause{}).Where("p.organization_name = ?", org),
		orderBy: projectOrder,
	}, limit)
}

// Get returns the project with the given id.
func (*ProjectStore) Get(ctx context.Context, h db.Handler, id int64) (*Project, error) {
	var p Project
	err := h.GetContext(ctx, &p, h.Rebind(`SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`), id)
	if err := db.WrapError(err); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the projects with the given ids keyed by id.
func (*ProjectStore) GetByIDs(ctx context.Context, h db.Handler, ids []int64) (map[int64]*Project, error) {
	out := make(map[int64]*Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+projectColumns+` FROM projects p WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err := h.SelectContext(ctx, &projects, h.Rebind(q), args...); err != nil {
		return nil, err
	}
	for i := range projects {
		out[projects[i].ID] = &projects[i]
	}
	return out, nil
}
