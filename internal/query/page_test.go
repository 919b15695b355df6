package query_test

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/query"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  query.PageRequest
	}{
		{"defaults", "", query.PageRequest{Page: 1, PerPage: 20}},
		{"explicit", "page=3&per_page=5", query.PageRequest{Page: 3, PerPage: 5}},
		{"capped", "per_page=1000", query.PageRequest{Page: 1, PerPage: 100}},
		{"zero page", "page=0", query.PageRequest{Page: 1, PerPage: 20}},
		{"negative per page", "per_page=-4", query.PageRequest{Page: 1, PerPage: 20}},
		{"garbage", "page=two&per_page=many", query.PageRequest{Page: 1, PerPage: 20}},
		{"huge page", "page=" + strconv.Itoa(math.MaxInt), query.PageRequest{Page: math.MaxInt/20 + 1, PerPage: 20}},
		{"page beyond int", "page=99999999999999999999999", query.PageRequest{Page: math.MaxInt/20 + 1, PerPage: 20}},
		{"huge per page and page", "page=" + strconv.Itoa(math.MaxInt) + "&per_page=" + strconv.Itoa(math.MaxInt),
			query.PageRequest{Page: math.MaxInt/100 + 1, PerPage: 100}},
		{"per page beyond int", "per_page=99999999999999999999999", query.PageRequest{Page: 1, PerPage: 100}},
		{"negative beyond int", "page=-99999999999999999999999", query.PageRequest{Page: 1, PerPage: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query.ParsePageRequest(v, 20, 100))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, query.PageRequest{Page: 1, PerPage: 20}.Offset())
	assert.Equal(t, 40, query.PageRequest{Page: 3, PerPage: 20}.Offset())

	for _, perPage := range []int{1, 7, 20, 100} {
		v := url.Values{"page": {strconv.Itoa(math.MaxInt)}, "per_page": {strconv.Itoa(perPage)}}
		req := query.ParsePageRequest(v, 20, 100)
		assert.GreaterOrEqual(t, req.Offset(), 0, "per_page=%d", perPage)
	}
}

func TestNewPage_Last(t *testing.T) {
	tests := []struct {
		total, perPage, last int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 2, 3},
	}
	for _, tt := range tests {
		p := query.NewPage(query.PageRequest{Page: 1, PerPage: tt.perPage}, tt.total)
		assert.Equal(t, tt.last, p.Last, "total=%d per_page=%d", tt.total, tt.perPage)
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestLinks_SinglePage(t *testing.T) {
	p := query.NewPage(query.PageRequest{Page: 1, PerPage: 20}, 3)
	assert.Empty(t, p.Links(mustParse(t, "http://localhost/api/projects")))
}

func TestLinks_FirstOfMany(t *testing.T) {
	p := query.NewPage(query.PageRequest{Page: 1, PerPage: 2}, 5)
	links := p.Links(mustParse(t, "http://localhost/api/projects?per_page=2"))
	assert.Equal(t, map[string]string{
		"next": "http://localhost/api/projects?per_page=2&page=2",
		"last": "http://localhost/api/projects?per_page=2&page=3",
	}, links)
}

func TestLinks_MiddlePreservesOrder(t *testing.T) {
	p := query.NewPage(query.PageRequest{Page: 2, PerPage: 2}, 5)
	links := p.Links(mustParse(t, "http://localhost/api/projects?type=web%20service&page=2&per_page=2"))
	assert.Equal(t, map[string]string{
		"first": "http://localhost/api/projects?type=web%20service&per_page=2&page=1",
		"prev":  "http://localhost/api/projects?type=web%20service&per_page=2&page=1",
		"next":  "http://localhost/api/projects?type=web%20service&per_page=2&page=3",
		"last":  "http://localhost/api/projects?type=web%20service&per_page=2&page=3",
	}, links)
}

func TestLinks_PastTheEnd(t *testing.T) {
	p := query.NewPage(query.PageRequest{Page: 9, PerPage: 2}, 5)
	links := p.Links(mustParse(t, "http://localhost/api/events?page=9&per_page=2"))
	assert.Equal(t, map[string]string{
		"first": "http://localhost/api/events?per_page=2&page=1",
		"prev":  "http://localhost/api/events?per_page=2&page=3",
	}, links)
}
