package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/metrics"
	"github.com/joestump/civic-api/internal/query"
	"github.com/joestump/civic-api/internal/slug"
)

// OrganizationFilters are the query parameters accepted by organization lists.
var OrganizationFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "o.id", Kind: query.Int},
	{Param: "name", Column: "o.name"},
	{Param: "type", Column: "o.type"},
	{Param: "city", Column: "o.city"},
}}

// OrganizationStore reads and deletes organizations.
type OrganizationStore struct{}

// List returns one page of organizations in id order.
func (*OrganizationStore) List(ctx context.Context, h db.Handler, values url.Values, req query.PageRequest) ([]Organization, int, error) {
	return page[Organization](ctx, h, selection{
		columns: organizationColumns,
		from:    "organizations o",
		where:   OrganizationFilters.Compile(values),
		orderBy: "o.id",
	}, req)
}

// GetBySlug resolves a raw path segment to an organization. Spaces, dashes
// and underscores are interchangeable and percent-encoding is undone. Stored
// names may be in any normalization form; when more than one form is stored
// the row matching the segment byte for byte wins, otherwise the lookup is
// ErrAmbiguous.
func (*OrganizationStore) GetBySlug(ctx context.Context, h db.Handler, raw string) (*Organization, error) {
	org, err := getBySlug(ctx, h, raw)
	switch {
	case err == nil:
		metrics.SlugLookupsTotal.WithLabelValues("found").Inc()
	case errors.Is(err, ErrNotFound):
		metrics.SlugLookupsTotal.WithLabelValues("not_found").Inc()
	case errors.Is(err, ErrAmbiguous):
		metrics.SlugLookupsTotal.WithLabelValues("ambiguous").Inc()
	default:
		metrics.SlugLookupsTotal.WithLabelValues("error").Inc()
	}
	return org, err
}

func getBySlug(ctx context.Context, h db.Handler, raw string) (*Organization, error) {
	keys := slug.Candidates(raw)
	q, args, err := sqlx.In(`SELECT `+organizationColumns+` FROM organizations o
		WHERE `+slug.Column("o.name")+` IN (?) ORDER BY o.id`, keys)
	if err != nil {
		return nil, err
	}
	var orgs []Organization
	if err := h.SelectContext(ctx, &orgs, h.Rebind(q), args...); err != nil {
		return nil, err
	}

	switch len(orgs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &orgs[0], nil
	}
	for i := range orgs {
		if slug.Fold(orgs[i].Name) == keys[0] {
			return &orgs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q matches %d organizations", ErrAmbiguous, raw, len(orgs))
}

// GetByNames returns the organizations with the given names keyed by name.
// Names with no matching row are absent from the map.
func (*OrganizationStore) GetByNames(ctx context.Context, h db.Handler, names []string) (map[string]*Organization, error) {
	out := make(map[string]*Organization, len(names))
	if len(names) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+organizationColumns+` FROM organizations o WHERE o.name IN (?)`, names)
	if err != nil {
		return nil, err
	}
	var orgs []Organization
	if err := h.SelectContext(ctx, &orgs, h.Rebind(q), args...); err != nil {
		return nil, err
	}
	for i := range orgs {
		out[orgs[i].Name] = &orgs[i]
	}
	return out, nil
}

// Delete removes the organization identified by raw (a name or slug) and
// everything it owns in one transaction: its projects, their issues and
// issue-label associations, its events and its stories. Label rows are kept.
func (s *OrganizationStore) Delete(ctx context.Context, d *db.DB, raw string) error {
	err := d.TransactionContext(ctx, func(tx *db.Tx) error {
		org, err := s.GetBySlug(ctx, tx, raw)
		if err != nil {
			return err
		}

		stmts := []string{
			`DELETE FROM issue_labels WHERE issue_id IN (
				SELECT i.id FROM issues i JOIN projects p ON p.id = i.project_id
				WHERE p.organization_name = ?)`,
			`DELETE FROM issues WHERE project_id IN (
				SELECT p.id FROM projects p WHERE p.organization_name = ?)`,
			`DELETE FROM projects WHERE organization_name = ?`,
			`DELETE FROM events WHERE organization_name = ?`,
			`DELETE FROM stories WHERE organization_name = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, tx.Rebind(stmt), org.Name); err != nil {
				return fmt.Errorf("delete dependents of %q: %w", org.Name, err)
			}
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM organizations WHERE name = ?`), org.Name)
		if err != nil {
			return fmt.Errorf("delete organization %q: %w", org.Name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})

	switch {
	case err == nil:
		metrics.CascadeDeletesTotal.WithLabelValues("deleted").Inc()
	case errors.Is(err, ErrNotFound):
		metrics.CascadeDeletesTotal.WithLabelValues("not_found").Inc()
	default:
		metrics.CascadeDeletesTotal.WithLabelValues("error").Inc()
	}
	return err
}
