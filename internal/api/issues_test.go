package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

func TestIssues_Shape(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.Project(t, env.DB, store.Project{})
	is := testutil.Issue(t, env.DB, store.Issue{ProjectID: p.ID, Title: "Civic Issue 2", Body: "Civic Issue blah blah blah 2"})

	body := env.getJSON(t, "/api/issues")
	assert.Equal(t, float64(1), body["total"])
	got := objects(t, body)[0]
	assert.Equal(t, "Civic Issue 2", got["title"])
	assert.Equal(t, "Civic Issue blah blah blah 2", got["body"])
	assert.Contains(t, got, "project")
	listed, ok := got["project"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, p.OrganizationName, nested(t, listed, "organization")["name"])
	assert.NotContains(t, got, "issues")
	assert.NotContains(t, got, "project_id")
	assert.Equal(t, []any{}, got["labels"])

	single := env.getJSON(t, "/api/issues/"+itoa(is.ID))
	project, ok := single["project"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, project, "issues")
	assert.Equal(t, p.Name, project["name"])
	org := nested(t, project, "organization")
	assert.Equal(t, p.OrganizationName, org["name"])
	assert.Contains(t, org["api_url"], "/api/organizations/")
	assert.NotContains(t, org, "current_projects")

	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/issues/9999").Code)
}

// Listing several labels returns only issues carrying all of them. Two issues
// with one distinct label each therefore yield nothing for both labels.
func TestIssues_ByLabels(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.Project(t, env.DB, store.Project{})
	first := testutil.Issue(t, env.DB, store.Issue{ProjectID: p.ID})
	second := testutil.Issue(t, env.DB, store.Issue{ProjectID: p.ID})
	testutil.Attach(t, env.DB, first, testutil.Label(t, env.DB, store.Label{Name: "enhancement"}))
	testutil.Attach(t, env.DB, second, testutil.Label(t, env.DB, store.Label{Name: "hack"}))

	body := env.getJSON(t, "/api/issues/labels/enhancement")
	assert.Equal(t, float64(1), body["total"])
	labels := list(t, objects(t, body)[0]["labels"])
	assert.Equal(t, "enhancement", labels[0]["name"])

	body = env.getJSON(t, "/api/issues/labels/enhancement,hack")
	assert.Equal(t, float64(0), body["total"])
	assert.Empty(t, objects(t, body))
}

func TestIssues_Filters(t *testing.T) {
	env := newTestEnv(t)
	web := testutil.Project(t, env.DB, store.Project{Type: "web"})
	mobile := testutil.Project(t, env.DB, store.Project{Type: "mobile"})
	testutil.Issue(t, env.DB, store.Issue{ProjectID: web.ID, Title: "Awesome issue"})
	testutil.Issue(t, env.DB, store.Issue{ProjectID: mobile.ID, Title: "Sad issue", Body: "learning swift is sad"})

	assert.Equal(t, float64(2), env.getJSON(t, "/api/issues")["total"])

	for query, want := range map[string]string{
		"title=awesome":    "Awesome issue",
		"body=swift":       "Sad issue",
		"project_type=web": "Awesome issue",
	} {
		body := env.getJSON(t, "/api/issues?"+query)
		assert.Equal(t, float64(1), body["total"], query)
		assert.Equal(t, want, objects(t, body)[0]["title"], query)
	}
}

func TestProjects_EmbedIssuesWithLabels(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.Project(t, env.DB, store.Project{})
	is := testutil.Issue(t, env.DB, store.Issue{ProjectID: p.ID})
	testutil.Attach(t, env.DB, is, testutil.Label(t, env.DB, store.Label{Name: "bug"}))

	body := env.getJSON(t, "/api/projects/"+itoa(p.ID))
	issues := list(t, body["issues"])
	require.Len(t, issues, 1)
	assert.NotContains(t, issues[0], "project")
	assert.Equal(t, "bug", list(t, issues[0]["labels"])[0]["name"])
}
