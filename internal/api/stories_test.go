package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

func TestStories_Shape(t *testing.T) {
	env := newTestEnv(t)
	s := testutil.Story(t, env.DB, store.Story{})

	body := env.getJSON(t, "/api/stories")
	stories := objects(t, body)
	require.Len(t, stories, 1)
	got := stories[0]
	for _, key := range []string{"link", "organization_name", "title", "type", "api_url"} {
		assert.IsType(t, "", got[key], key)
	}
	assert.IsType(t, float64(0), got["id"])
	assert.IsType(t, map[string]any{}, got["organization"])

	single := env.getJSON(t, "/api/stories/"+itoa(s.ID))
	assert.Equal(t, s.Title, single["title"])
	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/stories/9999").Code)
}

func TestStories_Filters(t *testing.T) {
	env := newTestEnv(t)
	brigade := testutil.Org(t, env.DB, store.Organization{Type: "Brigade"})
	cfa := testutil.Org(t, env.DB, store.Organization{Type: "Code for All"})
	testutil.Story(t, env.DB, store.Story{Title: "Awesome story", OrganizationName: brigade.Name})
	testutil.Story(t, env.DB, store.Story{Title: "Sad story", Type: "a video", OrganizationName: cfa.Name})

	assert.Equal(t, float64(2), env.getJSON(t, "/api/stories")["total"])

	for query, want := range map[string]string{
		"title=awesome":             "Awesome story",
		"type=video":                "Sad story",
		"organization_type=brigade": "Awesome story",
	} {
		body := env.getJSON(t, "/api/stories?"+query)
		assert.Equal(t, float64(1), body["total"], query)
		assert.Equal(t, want, objects(t, body)[0]["title"], query)
	}
}
