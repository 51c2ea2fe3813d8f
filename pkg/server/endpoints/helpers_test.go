package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server"
	"github.com/doodlesbykumbi/folio/pkg/server/store/memory"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	m.Run()
}

type testAPI struct {
	t       *testing.T
	mem     *memory.Store
	srv     *server.Server
	handler http.Handler
}

type testOption func(cfg *config.FolioConfig, stores *server.Stores)

func withConcealForbidden() testOption {
	return func(cfg *config.FolioConfig, _ *server.Stores) {
		cfg.ConcealForbidden = true
	}
}

func withStores(mutate func(*server.Stores)) testOption {
	return func(_ *config.FolioConfig, stores *server.Stores) {
		mutate(stores)
	}
}

func newTestAPI(t *testing.T, opts ...testOption) *testAPI {
	t.Helper()

	cfg, err := config.LoadFile(t.TempDir() + "/missing.yml")
	require.NoError(t, err)
	cfg.Store = config.StoreMemory
	cfg.BcryptCost = 4
	cfg.MetricsEnabled = false

	mem := memory.NewStore()
	stores := server.Stores{
		Users:    mem.Users(),
		Blogs:    mem.Blogs(),
		Projects: mem.Projects(),
		Skills:   mem.Skills(),
		Contacts: mem.Contacts(),
		Health:   mem.Health(),
	}
	for _, opt := range opts {
		opt(cfg, &stores)
	}

	tokens, err := token.NewService(testSecret)
	require.NoError(t, err)

	srv, err := server.NewServer(cfg, stores, tokens, nil)
	require.NoError(t, err)
	srv.AccessLog = io.Discard
	RegisterAll(srv)

	return &testAPI{t: t, mem: mem, srv: srv, handler: srv.Handler()}
}

// do sends a JSON request and returns the recorder.
func (a *testAPI) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

type session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// register signs up a user and returns the session.
func (a *testAPI) register(name string) session {
	a.t.Helper()
	w := a.do("POST", "/api/users/register", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret-" + name,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var s session
	decode(a.t, w, &s)
	return s
}

// promote makes a registered user an admin directly in the store.
func (a *testAPI) promote(id string) {
	a.t.Helper()
	ctx := context.Background()
	user, err := a.mem.Users().FindByID(ctx, id)
	require.NoError(a.t, err)
	user.Role = model.RoleAdmin
	require.NoError(a.t, a.mem.Users().Update(ctx, user))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
