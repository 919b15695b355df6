package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

func TestEvents_Shape(t *testing.T) {
	env := newTestEnv(t)
	e := testutil.Event(t, env.DB, store.Event{StartTime: day(1)})

	body := env.getJSON(t, "/api/events")
	events := objects(t, body)
	require.Len(t, events, 1)
	got := events[0]
	for _, key := range []string{"description", "end_time", "event_url", "api_url", "location", "name", "organization_name", "start_time"} {
		assert.IsType(t, "", got[key], key)
	}
	assert.IsType(t, float64(0), got["id"])
	assert.IsType(t, map[string]any{}, got["organization"])
	assert.Equal(t, "2024-12-26 12:00:00", got["start_time"])
	assert.Equal(t, "2024-12-26 15:00:00", got["end_time"])

	single := env.getJSON(t, "/api/events/"+itoa(e.ID))
	assert.Equal(t, e.Name, single["name"])
	assert.Equal(t, http.StatusNotFound, env.get(t, "/api/events/9999").Code)
}

func TestEvents_Chronological(t *testing.T) {
	env := newTestEnv(t)
	testutil.Event(t, env.DB, store.Event{Name: "Later", StartTime: day(10)})
	testutil.Event(t, env.DB, store.Event{Name: "Earlier", StartTime: day(-10)})

	body := env.getJSON(t, "/api/events")
	assert.Equal(t, []any{"Earlier", "Later"}, field(objects(t, body), "name"))
}

func TestEvents_AllUpcoming(t *testing.T) {
	env := newTestEnv(t)
	teams := []struct {
		name   string
		offset int
		events []string
	}{
		{"USA USA USA", 1, []string{"Event One", "Event Four", "Event Seven"}},
		{"Brazil", 2, []string{"Event Two", "Event Five", "Event Eight"}},
		{"GER", 3, []string{"Event Three", "Event Six", "Event Nine"}},
	}
	for _, team := range teams {
		org := testutil.Org(t, env.DB, store.Organization{Name: team.name})
		testutil.Event(t, env.DB, store.Event{OrganizationName: org.Name, Name: "Past Event", StartTime: day(-1000 * team.offset)})
		scale := 10
		for _, name := range team.events {
			testutil.Event(t, env.DB, store.Event{OrganizationName: org.Name, Name: name, StartTime: day(scale * team.offset)})
			scale *= 10
		}
	}

	body := env.getJSON(t, "/api/events/upcoming_events")
	events := objects(t, body)
	require.Len(t, events, 9)
	assert.Equal(t, "Event One", events[0]["name"])
	assert.Equal(t, "Event Two", events[1]["name"])
	assert.Equal(t, "Event Nine", events[8]["name"])
}

func TestEvents_Filters(t *testing.T) {
	env := newTestEnv(t)
	brigade := testutil.Org(t, env.DB, store.Organization{Type: "Brigade"})
	cfa := testutil.Org(t, env.DB, store.Organization{Type: "Code for All"})
	testutil.Event(t, env.DB, store.Event{Name: "Awesome event", OrganizationName: brigade.Name, StartTime: day(1)})
	testutil.Event(t, env.DB, store.Event{Name: "Sad event", Description: "sad stuff will happen", OrganizationName: cfa.Name, StartTime: day(2)})

	assert.Equal(t, float64(2), env.getJSON(t, "/api/events")["total"])

	for query, want := range map[string]string{
		"name=awesome":             "Awesome event",
		"description=sad%20stuff":  "Sad event",
		"organization_type=brigade": "Awesome event",
	} {
		body := env.getJSON(t, "/api/events?"+query)
		assert.Equal(t, float64(1), body["total"], query)
		assert.Equal(t, want, objects(t, body)[0]["name"], query)
	}
}
