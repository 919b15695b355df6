package api

import (
	"net/http"
	"net/url"

	"github.com/joestump/civic-api/internal/query"
)

// listResponse is the envelope for every paginated collection.
type listResponse[T any] struct {
	Objects []T               `json:"objects"`
	Total   int               `json:"total"`
	Pages   map[string]string `json:"pages"`
}

// pageRequest extracts page and per_page from the query string.
// per_page is silently capped at the configured maximum.
func (h *handler) pageRequest(r *http.Request) query.PageRequest {
	return query.ParsePageRequest(r.URL.Query(), h.perPage, h.maxPerPage)
}

// writePage writes one page of objects with navigation links built from the
// request URL.
func writePage[T any](w http.ResponseWriter, r *http.Request, objects []T, req query.PageRequest, total int) {
	if objects == nil {
		objects = []T{}
	}
	p := query.NewPage(req, total)
	writeJSON(w, http.StatusOK, listResponse[T]{
		Objects: objects,
		Total:   total,
		Pages:   p.Links(requestURL(r)),
	})
}

// requestURL returns the absolute URL the client requested.
func requestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	u.Host = r.Host
	return &u
}

// baseURL is the scheme and host every api_url is built on.
func baseURL(r *http.Request) string {
	u := requestURL(r)
	return u.Scheme + "://" + u.Host
}
