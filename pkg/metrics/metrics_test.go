package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(m *Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	return r
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := New()
	router := newRouter(m)

	for _, id := range []string{"a", "b", "missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/blogs/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/blogs/{id}", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/blogs/{id}", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	router := newRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/blogs/x", nil))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "folio_http_requests_total"))
	assert.True(t, strings.Contains(body, "folio_http_request_duration_seconds_bucket"))
	assert.True(t, strings.Contains(body, `route="/api/blogs/{id}"`))
}

func TestRouteTemplate_Unmatched(t *testing.T) {
	assert.Equal(t, unmatchedRoute, routeTemplate(httptest.NewRequest("GET", "/nowhere", nil)))
}
