package store

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/query"
)

var eventOrganizationJoin = query.Join{Table: "organizations o", On: "o.name = e.organization_name"}

// EventFilters are the query parameters accepted by event lists.
var EventFilters = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "e.id", Kind: query.Int},
	{Param: "name", Column: "e.name"},
	{Param: "description", Column: "e.description"},
	{Param: "location", Column: "e.location"},
	{Param: "organization_name", Column: "e.organization_name"},
	{Param: "organization_type", Column: "o.type", Join: &eventOrganizationJoin},
	{Param: "organization_city", Column: "o.city", Join: &eventOrganizationJoin},
}}

// EventStore reads events.
type EventStore struct{}

// EventQuery scopes an event listing. An empty Organization lists events of
// every organization.
type EventQuery struct {
	Organization string
	View         View
	Now          time.Time
}

func (q EventQuery) clause(values url.Values) *query.Clause {
	c := EventFilters.Compile(values)
	if q.Organization != "" {
		c.Where("e.organization_name = ?", q.Organization)
	}
	if cond := q.View.cond(); cond != "" {
		c.Where(cond, q.Now)
	}
	return c
}

// List returns one page of events matching q and the filters in values.
func (*EventStore) List(ctx context.Context, h db.Handler, q EventQuery, values url.Values, req query.PageRequest) ([]Event, int, error) {
	return page[Event](ctx, h, selection{
		columns: eventColumns,
		from:    "events e",
		where:   q.clause(values),
		orderBy: q.View.order(),
	}, req)
}

// Window returns the first w.Limit events of org in view w.View.
func (*EventStore) Window(ctx context.Context, h db.Handler, org string, w Window, now time.Time) ([]Event, error) {
	q := EventQuery{Organization: org, View: w.View, Now: now}
	return limited[Event](ctx, h, selection{
		columns: eventColumns,
		from:    "events e",
		where:   q.clause(nil),
		orderBy: w.View.order(),
	}, w.Limit)
}

// Get returns the event with the given id.
func (*EventStore) Get(ctx context.Context, h db.Handler, id int64) (*Event, error) {
	var e Event
	err := h.GetContext(ctx, &e, h.Rebind(`SELECT `+eventColumns+` FROM events e WHERE e.id = ?`), id)
	if err := db.WrapError(err); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
