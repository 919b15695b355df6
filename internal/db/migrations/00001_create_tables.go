package migrations

// The civic schema is written as a Go migration because column types differ
// between the three supported databases:
//   - MySQL cannot index or reference TEXT columns, so names are VARCHAR(255)
//   - auto-increment keys are spelled differently everywhere
//   - double precision coordinates use a different type name per database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTables, downCreateTables)
}

func upCreateTables(ctx context.Context, tx *sql.Tx) error {
	return execAll(createTablesUpStmts(), func(stmt string) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	})
}

func downCreateTables(ctx context.Context, tx *sql.Tx) error {
	return execAll([]string{
		`DROP TABLE IF EXISTS issue_labels`,
		`DROP TABLE IF EXISTS labels`,
		`DROP TABLE IF EXISTS issues`,
		`DROP TABLE IF EXISTS stories`,
		`DROP TABLE IF EXISTS events`,
		`DROP TABLE IF EXISTS projects`,
		`DROP TABLE IF EXISTS organizations`,
	}, func(stmt string) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	})
}

// columnTypes holds the per-dialect spelling of each column kind.
type columnTypes struct {
	id    string
	key   string
	text  string
	float string
	ts    string
}

func typesFor(d string) columnTypes {
	switch d {
	case "postgres":
		return columnTypes{
			id:    "SERIAL PRIMARY KEY",
			key:   "VARCHAR(255)",
			text:  "TEXT",
			float: "DOUBLE PRECISION",
			ts:    "TIMESTAMP",
		}
	case "mysql":
		return columnTypes{
			id:    "INTEGER NOT NULL AUTO_INCREMENT PRIMARY KEY",
			key:   "VARCHAR(255)",
			text:  "TEXT",
			float: "DOUBLE",
			ts:    "DATETIME",
		}
	default: // sqlite3
		return columnTypes{
			id:    "INTEGER PRIMARY KEY AUTOINCREMENT",
			key:   "TEXT",
			text:  "TEXT",
			float: "REAL",
			ts:    "TIMESTAMP",
		}
	}
}

func createTablesUpStmts() []string {
	t := typesFor(dialect)
	// MySQL does not allow defaults on TEXT columns.
	textDefault := " NOT NULL DEFAULT ''"
	if dialect == "mysql" {
		textDefault = " NOT NULL"
	}
	text := t.text + textDefault
	orgRef := "REFERENCES organizations(name) ON DELETE CASCADE ON UPDATE RESTRICT"

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS organizations (
    id                ` + t.id + `,
    name              ` + t.key + ` NOT NULL UNIQUE,
    website           ` + text + `,
    events_url        ` + text + `,
    rss               ` + text + `,
    projects_list_url ` + text + `,
    type              ` + text + `,
    city              ` + text + `,
    latitude          ` + t.float + ` NULL,
    longitude         ` + t.float + ` NULL,
    last_updated      ` + t.ts + ` NOT NULL,
    started_on        ` + text + `,
    keep              BOOLEAN NOT NULL DEFAULT TRUE
)`,
		`CREATE TABLE IF NOT EXISTS projects (
    id                ` + t.id + `,
    name              ` + text + `,
    code_url          ` + text + `,
    link_url          ` + text + `,
    description       ` + text + `,
    type              ` + text + `,
    categories        ` + text + `,
    github_details    ` + t.text + ` NULL,
    last_updated      ` + t.ts + ` NULL,
    organization_name ` + t.key + ` NOT NULL ` + orgRef + `
)`,
		`CREATE TABLE IF NOT EXISTS events (
    id                ` + t.id + `,
    name              ` + text + `,
    description       ` + text + `,
    event_url         ` + text + `,
    location          ` + text + `,
    start_time        ` + t.ts + ` NOT NULL,
    end_time          ` + t.ts + ` NULL,
    created_at        ` + t.ts + ` NOT NULL,
    organization_name ` + t.key + ` NOT NULL ` + orgRef + `
)`,
		`CREATE TABLE IF NOT EXISTS stories (
    id                ` + t.id + `,
    title             ` + text + `,
    link              ` + text + `,
    type              ` + text + `,
    organization_name ` + t.key + ` NOT NULL ` + orgRef + `
)`,
		`CREATE TABLE IF NOT EXISTS issues (
    id         ` + t.id + `,
    title      ` + text + `,
    body       ` + text + `,
    html_url   ` + text + `,
    project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS labels (
    id    ` + t.id + `,
    name  ` + t.key + ` NOT NULL UNIQUE,
    color ` + text + `,
    url   ` + text + `
)`,
		`CREATE TABLE IF NOT EXISTS issue_labels (
    issue_id INTEGER NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
    label_id INTEGER NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
    PRIMARY KEY (issue_id, label_id)
)`,
	}

	indexes := []struct{ name, table, cols string }{
		{"idx_projects_org_updated", "projects", "organization_name, last_updated"},
		{"idx_events_org_start", "events", "organization_name, start_time"},
		{"idx_stories_org", "stories", "organization_name"},
		{"idx_issues_project", "issues", "project_id"},
	}
	for _, ix := range indexes {
		// MySQL has no CREATE INDEX IF NOT EXISTS; the migration runs once anyway.
		ifNotExists := "IF NOT EXISTS "
		if dialect == "mysql" {
			ifNotExists = ""
		}
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX %s%s ON %s (%s)", ifNotExists, ix.name, ix.table, ix.cols))
	}

	if dialect == "mysql" {
		for i, s := range stmts {
			if strings.HasPrefix(s, "CREATE TABLE") {
				stmts[i] = s + " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
			}
		}
	}
	return stmts
}
