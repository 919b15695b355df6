package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/civic-api/internal/store"
	"github.com/joestump/civic-api/internal/testutil"
)

func TestUnknownPath(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found","code":"NOT_FOUND"}`, rec.Body.String())
}

func TestTrailingSlash(t *testing.T) {
	env := newTestEnv(t)
	testutil.Org(t, env.DB, store.Organization{Name: "Code for America"})

	body := env.getJSON(t, "/api/organizations/")
	assert.Equal(t, float64(1), body["total"])
	body = env.getJSON(t, "/api/organizations/Code-for-America/")
	assert.Equal(t, "Code for America", body["name"])
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://civic.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestForwardedProtoLinks(t *testing.T) {
	env := newTestEnv(t)
	testutil.Org(t, env.DB, store.Organization{Name: "Open Oakland"})

	req := httptest.NewRequest(http.MethodGet, "/api/organizations?per_page=1", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://example.com/api/organizations/Open-Oakland", objects(t, body)[0]["api_url"])
}

func TestLabels(t *testing.T) {
	env := newTestEnv(t)
	testutil.Label(t, env.DB, store.Label{Name: "bug", Color: "fc2929"})
	testutil.Label(t, env.DB, store.Label{Name: "help wanted"})

	body := env.getJSON(t, "/api/labels")
	assert.Equal(t, float64(2), body["total"])
	labels := objects(t, body)
	assert.Equal(t, []any{"bug", "help wanted"}, field(labels, "name"))
	assert.Equal(t, "fc2929", labels[0]["color"])

	body = env.getJSON(t, "/api/labels?name=help")
	assert.Equal(t, float64(1), body["total"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	body := env.getJSON(t, "/healthz")
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/api/projects")

	rec := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `civic_http_requests_total{route="/api/projects",status="200"}`))
}
