package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

var seq atomic.Int64

func next() int64 { return seq.Add(1) }

// Time returns t as stored: UTC with second precision.
func Time(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func insert(t *testing.T, d *db.DB, query string, args ...interface{}) int64 {
	t.Helper()
	res, err := d.ExecContext(context.Background(), d.Rebind(query), args...)
	if err != nil {
		t.Fatalf("insert fixture: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("fixture id: %v", err)
	}
	return id
}

// Org inserts an organization, filling unset fields with defaults.
func Org(t *testing.T, d *db.DB, o store.Organization) store.Organization {
	t.Helper()
	n := next()
	if o.Name == "" {
		o.Name = fmt.Sprintf("Civic Organization %d", n)
	}
	if o.Website == "" {
		o.Website = "http://www.codeforamerica.org"
	}
	if o.EventsURL == "" {
		o.EventsURL = "http://www.meetup.com/events/Code-For-Charlotte/"
	}
	if o.RSS == "" {
		o.RSS = "http://www.codeforamerica.org/blog/feed/"
	}
	if o.ProjectsListURL == "" {
		o.ProjectsListURL = "https://github.com/codeforamerica"
	}
	if o.Type == "" {
		o.Type = "Brigade"
	}
	if o.City == "" {
		o.City = "San Francisco, CA"
	}
	if !o.Latitude.Valid {
		o.Latitude = sql.NullFloat64{Float64: 37.7749, Valid: true}
	}
	if !o.Longitude.Valid {
		o.Longitude = sql.NullFloat64{Float64: -122.4194, Valid: true}
	}
	if o.LastUpdated.IsZero() {
		o.LastUpdated = time.Now()
	}
	o.LastUpdated = Time(o.LastUpdated)
	if o.StartedOn == "" {
		o.StartedOn = "2013-07-01"
	}
	o.Keep = true

	o.ID = insert(t, d, `INSERT INTO organizations
		(name, website, events_url, rss, projects_list_url, type, city, latitude, longitude, last_updated, started_on, keep)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Name, o.Website, o.EventsURL, o.RSS, o.ProjectsListURL, o.Type, o.City,
		o.Latitude, o.Longitude, o.LastUpdated, o.StartedOn, o.Keep)
	return o
}

// Project inserts a project. Without an OrganizationName a fresh
// organization is created to own it.
func Project(t *testing.T, d *db.DB, p store.Project) store.Project {
	t.Helper()
	n := next()
	if p.OrganizationName == "" {
		p.OrganizationName = Org(t, d, store.Organization{}).Name
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("Civic Project %d", n)
	}
	if p.CodeURL == "" {
		p.CodeURL = "https://github.com/codeforamerica/cityvoice"
	}
	if p.LinkURL == "" {
		p.LinkURL = "http://www.cityvoiceapp.com/"
	}
	if p.Description == "" {
		p.Description = "A place-based call-in system for gathering and sharing community feedback"
	}
	if p.Type == "" {
		p.Type = "web service"
	}
	if p.Categories == "" {
		p.Categories = "community engagement, housing"
	}
	if p.LastUpdated.Valid {
		p.LastUpdated.Time = Time(p.LastUpdated.Time)
	}

	p.ID = insert(t, d, `INSERT INTO projects
		(name, code_url, link_url, description, type, categories, github_details, last_updated, organization_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.CodeURL, p.LinkURL, p.Description, p.Type, p.Categories,
		p.GithubDetails, p.LastUpdated, p.OrganizationName)
	return p
}

// Event inserts an event. StartTime defaults to one day from now.
func Event(t *testing.T, d *db.DB, e store.Event) store.Event {
	t.Helper()
	n := next()
	if e.OrganizationName == "" {
		e.OrganizationName = Org(t, d, store.Organization{}).Name
	}
	if e.Name == "" {
		e.Name = fmt.Sprintf("Civic Event %d", n)
	}
	if e.Description == "" {
		e.Description = "A civic hack night"
	}
	if e.EventURL == "" {
		e.EventURL = "http://www.meetup.com/events/civic-hack-night/"
	}
	if e.Location == "" {
		e.Location = "155 9th St., San Francisco, CA"
	}
	if e.StartTime.IsZero() {
		e.StartTime = time.Now().Add(24 * time.Hour)
	}
	e.StartTime = Time(e.StartTime)
	if !e.EndTime.Valid {
		e.EndTime = sql.NullTime{Time: e.StartTime.Add(3 * time.Hour), Valid: true}
	}
	e.EndTime.Time = Time(e.EndTime.Time)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = Time(e.CreatedAt)

	e.ID = insert(t, d, `INSERT INTO events
		(name, description, event_url, location, start_time, end_time, created_at, organization_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Description, e.EventURL, e.Location, e.StartTime, e.EndTime, e.CreatedAt, e.OrganizationName)
	return e
}

// Story inserts a story.
func Story(t *testing.T, d *db.DB, s store.Story) store.Story {
	t.Helper()
	n := next()
	if s.OrganizationName == "" {
		s.OrganizationName = Org(t, d, store.Organization{}).Name
	}
	if s.Title == "" {
		s.Title = fmt.Sprintf("Civic Story %d", n)
	}
	if s.Link == "" {
		s.Link = "http://www.codeforamerica.org/blog/"
	}
	if s.Type == "" {
		s.Type = "blog"
	}

	s.ID = insert(t, d, `INSERT INTO stories (title, link, type, organization_name) VALUES (?, ?, ?, ?)`,
		s.Title, s.Link, s.Type, s.OrganizationName)
	return s
}

// Issue inserts an issue. Without a ProjectID a fresh project is created.
func Issue(t *testing.T, d *db.DB, is store.Issue) store.Issue {
	t.Helper()
	n := next()
	if is.ProjectID == 0 {
		is.ProjectID = Project(t, d, store.Project{}).ID
	}
	if is.Title == "" {
		is.Title = fmt.Sprintf("Civic Issue %d", n)
	}
	if is.Body == "" {
		is.Body = fmt.Sprintf("Civic Issue blah blah blah %d", n)
	}
	if is.HTMLURL == "" {
		is.HTMLURL = fmt.Sprintf("https://github.com/codeforamerica/cityvoice/issues/%d", n)
	}

	is.ID = insert(t, d, `INSERT INTO issues (title, body, html_url, project_id) VALUES (?, ?, ?, ?)`,
		is.Title, is.Body, is.HTMLURL, is.ProjectID)
	return is
}

// Label inserts a label.
func Label(t *testing.T, d *db.DB, l store.Label) store.Label {
	t.Helper()
	n := next()
	if l.Name == "" {
		l.Name = fmt.Sprintf("label-%d", n)
	}
	if l.Color == "" {
		l.Color = "84b6eb"
	}
	if l.URL == "" {
		l.URL = "https://api.github.com/repos/codeforamerica/cityvoice/labels/" + l.Name
	}

	l.ID = insert(t, d, `INSERT INTO labels (name, color, url) VALUES (?, ?, ?)`, l.Name, l.Color, l.URL)
	return l
}

// Attach associates labels with an issue.
func Attach(t *testing.T, d *db.DB, issue store.Issue, labels ...store.Label) {
	t.Helper()
	for _, l := range labels {
		if _, err := d.ExecContext(context.Background(),
			d.Rebind(`INSERT INTO issue_labels (issue_id, label_id) VALUES (?, ?)`), issue.ID, l.ID); err != nil {
			t.Fatalf("attach label: %v", err)
		}
	}
}

// Count returns the number of rows in table.
func Count(t *testing.T, d *db.DB, table string) int {
	t.Helper()
	var n int
	if err := d.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
