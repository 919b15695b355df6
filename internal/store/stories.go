package store

import (
	"context"
	"errors"
	"net/url"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

var storyOrganizationJoin = query.Join{Table: "organizations o", On: "o.name = s.organization_name"}

// StoryFilters are the query parameters accepted by story lists.
var StoryFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "s.id", Kind: query.Int},
	{Param: "title", Column: "s.title"},
	{Param: "type", Column: "s.type"},
	{Param: "organization_name", Column: "s.organization_name"},
	{Param: "organization_type", Column: "o.type", Join: &storyOrganizationJoin},
}}

// StoryStore reads stories.
type StoryStore struct{}

// List returns one page of stories in creation order. An empty org lists
// stories of every organization.
func (*StoryStore) List(ctx context.Context, h db.Handler, org string, values url.Values, req query.PageRequest) ([]Story, int, error) {
	c := StoryFilters.Compile(values)
	if org != "" {
		c.Where("s.organization_name = ?", org)
	}
	return page[Story](ctx, h, selection{
		columns: storyColumns,
		from:    "stories s",
		where:   c,
		orderBy: "s.id",
	}, req)
}

// Current returns the limit newest stories of org, oldest of them first.
func (*StoryStore) Current(ctx context.Context, h db.Handler, org string, limit int) ([]Story, error) {
	q := `SELECT * FROM (
		SELECT ` + storyColumns + ` FROM stories s
		WHERE s.organization_name = ?
		ORDER BY s.id DESC LIMIT ?
	) newest ORDER BY newest.id`
	stories := []Story{}
	if err := h.SelectContext(ctx, &stories, h.Rebind(q), org, limit); err != nil {
		return nil, err
	}
	return stories, nil
}

// Get returns the story with the given id.
func (*StoryStore) Get(ctx context.Context, h db.Handler, id int64) (*Story, error) {
	var s Story
	err := h.GetContext(ctx, &s, h.Rebind(`SELECT `+storyColumns+` FROM stories s WHERE s.id = ?`), id)
	if err := db.WrapError(err); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
