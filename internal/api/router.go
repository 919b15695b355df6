// Package api serves the read-only JSON API over civic records.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	DB     *db.DB
	Store  *store.Store
	Logger *log.Logger

	// PerPage and MaxPerPage bound list sizes. Zero uses 20 and 100.
	PerPage    int
	MaxPerPage int

	// Now is the clock used for upcoming and past event views. Nil uses
	// time.Now.
	Now func() time.Time
}

// handler carries the dependencies shared by every endpoint.
type handler struct {
	db         *db.DB
	store      *store.Store
	perPage    int
	maxPerPage int
	now        func() time.Time
}

// NewRouter assembles the chi router with all middleware and routes.
// Static sub-paths are registered before {id} patterns so they take
// precedence.
func NewRouter(deps Deps) http.Handler {
	h := &handler{
		db:         deps.DB,
		store:      deps.Store,
		perPage:    deps.PerPage,
		maxPerPage: deps.MaxPerPage,
		now:        deps.Now,
	}
	if h.perPage == 0 {
		h.perPage = defaultPerPage
	}
	if h.maxPerPage == 0 {
		h.maxPerPage = maxPerPage
	}
	if h.now == nil {
		h.now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(contextLogger(logger.WithPrefix("http")))
	r.Use(instrument)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}).Handler)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(apiHeaders)

		r.Get("/healthz", h.Health)

		r.Route("/api", func(r chi.Router) {
			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", h.ListOrganizations)
				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", h.GetOrganization)
					r.Get("/projects", h.OrganizationProjects)
					r.Get("/events", h.OrganizationEvents(store.AllEvents))
					r.Get("/upcoming_events", h.OrganizationEvents(store.Upcoming))
					r.Get("/past_events", h.OrganizationEvents(store.Past))
					r.Get("/stories", h.OrganizationStories)
					r.Get("/issues", h.OrganizationIssues)
				})
			})

			r.Get("/projects", h.ListProjects)
			r.Get("/projects/{id}", h.GetProject)

			r.Get("/events", h.ListEvents(store.AllEvents))
			r.Get("/events/upcoming_events", h.ListEvents(store.Upcoming))
			r.Get("/events/{id}", h.GetEvent)

			r.Get("/stories", h.ListStories)
			r.Get("/stories/{id}", h.GetStory)

			r.Get("/issues", h.ListIssues)
			r.Get("/issues/labels/{labels}", h.IssuesByLabels)
			r.Get("/issues/{id}", h.GetIssue)

			r.Get("/labels", h.ListLabels)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			notFound(w)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
		})
	})

	return r
}

// read runs fn inside one request-scoped transaction.
func (h *handler) read(ctx context.Context, fn func(tx db.Handler) error) error {
	return h.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return fn(tx)
	})
}

// reference is the instant temporal views are computed against.
func (h *handler) reference() time.Time {
	return store.Reference(h.now)
}
