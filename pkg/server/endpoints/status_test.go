package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/folio/pkg/server"
)

func TestHandleStatus(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handleStatus()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"folio","version":"`+Version+`","message":"API is running"}`, w.Body.String())
}

func TestHandleHealth(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		health := &MockHealthStore{}
		health.On("CheckConnectivity", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		handleHealth(health)(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"connected"}`, w.Body.String())
		health.AssertExpectations(t)
	})

	t.Run("unreachable", func(t *testing.T) {
		health := &MockHealthStore{}
		health.On("CheckConnectivity", mock.Anything).Return(errors.New("dial tcp: connection refused"))

		w := httptest.NewRecorder()
		handleHealth(health)(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		health.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do("GET", "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())

	w = api.do("PATCH", "/api/blogs", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = api.do("POST", "/api/users/login", "", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth_ThroughServer(t *testing.T) {
	health := &MockHealthStore{}
	health.On("CheckConnectivity", mock.Anything).Return(errors.New("down"))

	api := newTestAPI(t, withStores(func(s *server.Stores) { s.Health = health }))

	w := api.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
