package api

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/joestump/civic-api/internal/slug"
	"github.com/joestump/civic-api/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// organizationRef is the organization as embedded in its children.
type organizationRef struct {
	APIURL      string   `json:"api_url"`
	AllEvents   string   `json:"all_events"`
	AllIssues   string   `json:"all_issues"`
	AllProjects string   `json:"all_projects"`
	AllStories  string   `json:"all_stories"`
	City        string   `json:"city"`
	EventsURL   string   `json:"events_url"`
	LastUpdated float64  `json:"last_updated"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Name        string   `json:"name"`
	ProjectsURL string   `json:"projects_list_url"`
	RSS         string   `json:"rss"`
	StartedOn   string   `json:"started_on"`
	Type        string   `json:"type"`
	Website     string   `json:"website"`
}

// organizationRecord is a full organization with its current windows.
type organizationRecord struct {
	organizationRef
	PastEvents      string          `json:"past_events"`
	UpcomingEvents  string          `json:"upcoming_events"`
	CurrentEvents   []eventRecord   `json:"current_events"`
	CurrentProjects []projectRecord `json:"current_projects"`
	CurrentStories  []storyRecord   `json:"current_stories"`
}

type projectRecord struct {
	APIURL           string           `json:"api_url"`
	Categories       string           `json:"categories"`
	CodeURL          string           `json:"code_url"`
	Description      string           `json:"description"`
	GithubDetails    json.RawMessage  `json:"github_details"`
	ID               int64            `json:"id"`
	Issues           *[]issueRecord   `json:"issues,omitempty"`
	LastUpdated      *float64         `json:"last_updated"`
	LinkURL          string           `json:"link_url"`
	Name             string           `json:"name"`
	Organization     *organizationRef `json:"organization,omitempty"`
	OrganizationName string           `json:"organization_name"`
	Type             string           `json:"type"`
}

type eventRecord struct {
	APIURL           string           `json:"api_url"`
	CreatedAt        string           `json:"created_at"`
	Description      string           `json:"description"`
	EndTime          string           `json:"end_time"`
	EventURL         string           `json:"event_url"`
	ID               int64            `json:"id"`
	Location         string           `json:"location"`
	Name             string           `json:"name"`
	Organization     *organizationRef `json:"organization,omitempty"`
	OrganizationName string           `json:"organization_name"`
	StartTime        string           `json:"start_time"`
}

type storyRecord struct {
	APIURL           string           `json:"api_url"`
	ID               int64            `json:"id"`
	Link             string           `json:"link"`
	Organization     *organizationRef `json:"organization,omitempty"`
	OrganizationName string           `json:"organization_name"`
	Title            string           `json:"title"`
	Type             string           `json:"type"`
}

type issueRecord struct {
	APIURL  string         `json:"api_url"`
	Body    string         `json:"body"`
	HTMLURL string         `json:"html_url"`
	ID      int64          `json:"id"`
	Labels  []labelRecord  `json:"labels"`
	Project *projectRecord `json:"project,omitempty"`
	Title   string         `json:"title"`
}

type labelRecord struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// renderer projects store rows into response records. All links are absolute
// and use the dash-separated organization slug.
type renderer struct {
	base string
}

func (rn renderer) organizationURL(name string) string {
	return rn.base + "/api/organizations/" + url.PathEscape(slug.Derive(name))
}

func (rn renderer) url(kind string, id int64) string {
	return rn.base + "/api/" + kind + "/" + strconv.FormatInt(id, 10)
}

func (rn renderer) organizationRef(o *store.Organization) *organizationRef {
	if o == nil {
		return nil
	}
	self := rn.organizationURL(o.Name)
	ref := &organizationRef{
		APIURL:      self,
		AllEvents:   self + "/events",
		AllIssues:   self + "/issues",
		AllProjects: self + "/projects",
		AllStories:  self + "/stories",
		City:        o.City,
		EventsURL:   o.EventsURL,
		LastUpdated: epoch(o.LastUpdated),
		Name:        o.Name,
		ProjectsURL: o.ProjectsListURL,
		RSS:         o.RSS,
		StartedOn:   o.StartedOn,
		Type:        o.Type,
		Website:     o.Website,
	}
	if o.Latitude.Valid {
		ref.Latitude = &o.Latitude.Float64
	}
	if o.Longitude.Valid {
		ref.Longitude = &o.Longitude.Float64
	}
	return ref
}

// current holds the windows shown on an organization.
type current struct {
	events   []store.Event
	projects []store.Project
	stories  []store.Story
}

func (rn renderer) organization(o *store.Organization, cur current) organizationRecord {
	ref := rn.organizationRef(o)
	rec := organizationRecord{
		organizationRef: *ref,
		PastEvents:      ref.APIURL + "/past_events",
		UpcomingEvents:  ref.APIURL + "/upcoming_events",
		CurrentEvents:   make([]eventRecord, 0, len(cur.events)),
		CurrentProjects: make([]projectRecord, 0, len(cur.projects)),
		CurrentStories:  make([]storyRecord, 0, len(cur.stories)),
	}
	for i := range cur.events {
		rec.CurrentEvents = append(rec.CurrentEvents, rn.event(&cur.events[i], o))
	}
	for i := range cur.projects {
		rec.CurrentProjects = append(rec.CurrentProjects, rn.project(&cur.projects[i], o, nil))
	}
	for i := range cur.stories {
		rec.CurrentStories = append(rec.CurrentStories, rn.story(&cur.stories[i], o))
	}
	return rec
}

// project renders p. issues, when non-nil, is embedded as the project's
// issue list; their own project field is left out.
func (rn renderer) project(p *store.Project, org *store.Organization, issues []issueRecord) projectRecord {
	rec := projectRecord{
		APIURL:           rn.url("projects", p.ID),
		Categories:       p.Categories,
		CodeURL:          p.CodeURL,
		Description:      p.Description,
		GithubDetails:    rawJSON(p.GithubDetails.String, p.GithubDetails.Valid),
		ID:               p.ID,
		LinkURL:          p.LinkURL,
		Name:             p.Name,
		Organization:     rn.organizationRef(org),
		OrganizationName: p.OrganizationName,
		Type:             p.Type,
	}
	if p.LastUpdated.Valid {
		ts := epoch(p.LastUpdated.Time)
		rec.LastUpdated = &ts
	}
	if issues != nil {
		rec.Issues = &issues
	}
	return rec
}

func (rn renderer) event(e *store.Event, org *store.Organization) eventRecord {
	rec := eventRecord{
		APIURL:           rn.url("events", e.ID),
		CreatedAt:        e.CreatedAt.UTC().Format(timeLayout),
		Description:      e.Description,
		EventURL:         e.EventURL,
		ID:               e.ID,
		Location:         e.Location,
		Name:             e.Name,
		Organization:     rn.organizationRef(org),
		OrganizationName: e.OrganizationName,
		StartTime:        e.StartTime.UTC().Format(timeLayout),
	}
	if e.EndTime.Valid {
		rec.EndTime = e.EndTime.Time.UTC().Format(timeLayout)
	}
	return rec
}

func (rn renderer) story(s *store.Story, org *store.Organization) storyRecord {
	return storyRecord{
		APIURL:           rn.url("stories", s.ID),
		ID:               s.ID,
		Link:             s.Link,
		Organization:     rn.organizationRef(org),
		OrganizationName: s.OrganizationName,
		Title:            s.Title,
		Type:             s.Type,
	}
}

// issue renders is. The embedded project carries its organization but not
// its issues.
func (rn renderer) issue(is *store.Issue, p *store.Project, org *store.Organization, labels []store.Label) issueRecord {
	rec := issueRecord{
		APIURL:  rn.url("issues", is.ID),
		Body:    is.Body,
		HTMLURL: is.HTMLURL,
		ID:      is.ID,
		Labels:  make([]labelRecord, 0, len(labels)),
		Title:   is.Title,
	}
	for _, l := range labels {
		rec.Labels = append(rec.Labels, label(l))
	}
	if p != nil {
		pr := rn.project(p, org, nil)
		rec.Project = &pr
	}
	return rec
}

func label(l store.Label) labelRecord {
	return labelRecord{Color: l.Color, Name: l.Name, URL: l.URL}
}

func epoch(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

// rawJSON passes stored JSON through unchanged, or null when it is missing
// or malformed.
func rawJSON(s string, valid bool) json.RawMessage {
	if !valid || s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}
