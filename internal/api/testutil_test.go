package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/api"
	"github.com/joestump/civic-api/internal/db"
	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

// christmas is the fixed "now" every test router runs at.
var christmas = time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time { return christmas.AddDate(0, 0, n) }

func updated(year int) sql.NullTime {
	return sql.NullTime{Time: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true}
}

// testEnv holds the router and the database behind it.
type testEnv struct {
	Router http.Handler
	DB     *db.DB
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	d := testutil.NewTestDB(t)
	router := api.NewRouter(api.Deps{
		DB:    d,
		Store: store.New(),
		Now:   func() time.Time { return christmas },
	})
	return &testEnv{Router: router, DB: d}
}

func (env *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// getJSON requests target, requires a 200 and decodes the body.
func (env *testEnv) getJSON(t *testing.T, target string) map[string]any {
	t.Helper()
	rec := env.get(t, target)
	require.Equal(t, http.StatusOK, rec.Code, "GET %s: %s", target, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func objects(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["objects"].([]any)
	require.True(t, ok, "objects is not a list: %v", body["objects"])
	out := make([]map[string]any, 0, len(raw))
	for _, o := range raw {
		out = append(out, o.(map[string]any))
	}
	return out
}

func field(items []map[string]any, key string) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it[key])
	}
	return out
}

// nested returns m[key] as an object.
func nested(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	require.True(t, ok, "%s is not an object: %v", key, m[key])
	return v
}

func list(t *testing.T, v any) []map[string]any {
	t.Helper()
	return objects(t, map[string]any{"objects": v})
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
