package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flowdeck/internal/middleware"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	m := middleware.NewMetrics("flowdeck")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/workflows/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workflows/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	expected := `
# HELP flowdeck_http_requests_total Total number of HTTP requests
# TYPE flowdeck_http_requests_total counter
flowdeck_http_requests_total{method="GET",route="/workflows/{id}",status="204"} 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "flowdeck_http_requests_total"))
}

func TestMetrics_HandlerExposesText(t *testing.T) {
	m := middleware.NewMetrics("flowdeck")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `flowdeck_http_requests_total{method="GET",route="unmatched",status="200"} 1`)
	assert.Contains(t, body, "flowdeck_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
