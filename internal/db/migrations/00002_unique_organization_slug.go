package migrations

// Organization names that differ only in separators resolve to the same slug,
// so uniqueness is enforced on the folded name. All three databases accept an
// expression index; MySQL needs 8.0.13 or later and the doubled parentheses.

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/joestump/civic-api/internal/slug"
)

const organizationSlugIndex = "idx_organizations_slug"

func init() {
	goose.AddMigrationContext(upUniqueOrganizationSlug, downUniqueOrganizationSlug)
}

func upUniqueOrganizationSlug(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "CREATE UNIQUE INDEX "+organizationSlugIndex+
		" ON organizations (("+slug.Column("name")+"))")
	return err
}

func downUniqueOrganizationSlug(ctx context.Context, tx *sql.Tx) error {
	stmt := "DROP INDEX IF EXISTS " + organizationSlugIndex
	if dialect == "mysql" {
		stmt = "DROP INDEX " + organizationSlugIndex + " ON organizations"
	}
	_, err := tx.ExecContext(ctx, stmt)
	return err
}
