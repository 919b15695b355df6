package store

import (
	"database/sql"
	"time"
)

// Organization represents a row in the organizations table. Name is the
// stable identity referenced by projects, events and stories.
type Organization struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	Website         string          `db:"website"`
	EventsURL       string          `db:"events_url"`
	RSS             string          `db:"rss"`
	ProjectsListURL string          `db:"projects_list_url"`
	Type            string          `db:"type"`
	City            string          `db:"city"`
	Latitude        sql.NullFloat64 `db:"latitude"`
	Longitude       sql.NullFloat64 `db:"longitude"`
	LastUpdated     time.Time       `db:"last_updated"`
	StartedOn       string          `db:"started_on"`
	Keep            bool            `db:"keep"`
}

// Project represents a row in the projects table.
type Project struct {
	ID               int64          `db:"id"`
	Name             string         `db:"name"`
	CodeURL          string         `db:"code_url"`
	LinkURL          string         `db:"link_url"`
	Description      string         `db:"description"`
	Type             string         `db:"type"`
	Categories       string         `db:"categories"`
	GithubDetails    sql.NullString `db:"github_details"` // raw JSON
	LastUpdated      sql.NullTime   `db:"last_updated"`
	OrganizationName string         `db:"organization_name"`
}

// Event represents a row in the events table. Times are naive and stored
// as UTC.
type Event struct {
	ID               int64        `db:"id"`
	Name             string       `db:"name"`
	Description      string       `db:"description"`
	EventURL         string       `db:"event_url"`
	Location         string       `db:"location"`
	StartTime        time.Time    `db:"start_time"`
	EndTime          sql.NullTime `db:"end_time"`
	CreatedAt        time.Time    `db:"created_at"`
	OrganizationName string       `db:"organization_name"`
}

// Story represents a row in the stories table. Stories carry no timestamp;
// id order is creation order.
type Story struct {
	ID               int64  `db:"id"`
	Title            string `db:"title"`
	Link             string `db:"link"`
	Type             string `db:"type"`
	OrganizationName string `db:"organization_name"`
}

// Issue represents a row in the issues table.
type Issue struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	HTMLURL   string `db:"html_url"`
	ProjectID int64  `db:"project_id"`
}

// Label represents a row in the labels table.
type Label struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Color string `db:"color"`
	URL   string `db:"url"`
}

const (
	organizationColumns = `o.id, o.name, o.website, o.events_url, o.rss, o.projects_list_url,
		o.type, o.city, o.latitude, o.longitude, o.last_updated, o.started_on, o.keep`
	projectColumns = `p.id, p.name, p.code_url, p.link_url, p.description, p.type,
		p.categories, p.github_details, p.last_updated, p.organization_name`
	eventColumns = `e.id, e.name, e.description, e.event_url, e.location,
		e.start_time, e.end_time, e.created_at, e.organization_name`
	storyColumns = `s.id, s.title, s.link, s.type, s.organization_name`
	issueColumns = `i.id, i.title, i.body, i.html_url, i.project_id`
	labelColumns = `l.id, l.name, l.color, l.url`
)
