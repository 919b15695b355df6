package store_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

func storyTitle(s store.Story) string { return s.Title }

func TestStoryStore_Current(t *testing.T) {
	s, d := newStore(t)
	org := testutil.Org(t, d, store.Organization{Name: "Collective of Ericas"})
	for _, title := range []string{"First Story", "Second Story", "Third Story"} {
		testutil.Story(t, d, store.Story{OrganizationName: org.Name, Title: title})
	}

	current, err := s.Stories.Current(context.Background(), d, org.Name, store.CurrentStories)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second Story", "Third Story"}, names(current, storyTitle))
}

func TestStoryStore_Filters(t *testing.T) {
	s, d := newStore(t)
	ctx := context.Background()
	brigade := testutil.Org(t, d, store.Organization{Type: "Brigade"})
	cfa := testutil.Org(t, d, store.Organization{Type: "Code for All"})
	testutil.Story(t, d, store.Story{Title: "Awesome story", OrganizationName: brigade.Name})
	testutil.Story(t, d, store.Story{Title: "Sad story", Type: "a video", OrganizationName: cfa.Name})

	tests := []struct {
		values url.Values
		want   []string
	}{
		{nil, []string{"Awesome story", "Sad story"}},
		{url.Values{"title": {"awesome"}}, []string{"Awesome story"}},
		{url.Values{"type": {"video"}}, []string{"Sad story"}},
		{url.Values{"organization_type": {"brigade"}}, []string{"Awesome story"}},
	}
	for _, tt := range tests {
		got, total, err := s.Stories.List(ctx, d, "", tt.values, firstPage)
		require.NoError(t, err)
		assert.Equal(t, len(tt.want), total)
		assert.Equal(t, tt.want, names(got, storyTitle))
	}

	scoped, total, err := s.Stories.List(ctx, d, cfa.Name, nil, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Sad story"}, names(scoped, storyTitle))
}
