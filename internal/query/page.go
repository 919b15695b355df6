package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PageRequest is the 1-indexed page a client asked for.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ParsePageRequest reads page and per_page from values. Missing, non-numeric
// or non-positive values fall back to page 1 and defaultPerPage; per_page is
// silently capped at maxPerPage. page is capped so that Offset cannot
// overflow; any page that large is past the end of every result set.
func ParsePageRequest(values url.Values, defaultPerPage, maxPerPage int) PageRequest {
	req := PageRequest{Page: 1, PerPage: defaultPerPage}

	if n, ok := positive(values.Get("page")); ok {
		req.Page = n
	}
	if n, ok := positive(values.Get("per_page")); ok {
		req.PerPage = n
	}
	if req.PerPage > maxPerPage {
		req.PerPage = maxPerPage
	}
	if limit := math.MaxInt/req.PerPage + 1; req.Page > limit {
		req.Page = limit
	}
	return req
}

// positive parses s as a positive integer. Values beyond the int range
// saturate rather than fail.
func positive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, n > 0
}

// Page describes one window over a result set of Total rows.
type Page struct {
	Number  int
	PerPage int
	Total   int
	// Last is the final page number, never less than 1.
	Last int
}

// NewPage computes the page window for req over total rows.
func NewPage(req PageRequest, total int) Page {
	last := (total + req.PerPage - 1) / req.PerPage
	if last < 1 {
		last = 1
	}
	return Page{
		Number:  req.Page,
		PerPage: req.PerPage,
		Total:   total,
		Last:    last,
	}
}

// Links returns the navigation map for p relative to base, an absolute
// request URL. next and last are present when a later page exists; first and
// prev when an earlier one does. A request beyond the end points prev at the
// last real page.
func (p Page) Links(base *url.URL) map[string]string {
	links := map[string]string{}
	if p.Number < p.Last {
		links["next"] = pageURL(base, p.Number+1)
		links["last"] = pageURL(base, p.Last)
	}
	if p.Number > 1 {
		prev := p.Number - 1
		if prev > p.Last {
			prev = p.Last
		}
		links["first"] = pageURL(base, 1)
		links["prev"] = pageURL(base, prev)
	}
	return links
}

// pageURL rewrites the page parameter of base. url.Values would re-sort the
// query, so the raw pairs are kept in the order the client sent them.
func pageURL(base *url.URL, page int) string {
	var pairs []string
	for _, pair := range strings.Split(base.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if k, err := url.QueryUnescape(key); err == nil && k == "page" {
			continue
		}
		pairs = append(pairs, pair)
	}
	pairs = append(pairs, "page="+strconv.Itoa(page))

	u := *base
	u.RawQuery = strings.Join(pairs, "&")
	u.Fragment = ""
	return u.String()
}
