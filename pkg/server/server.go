package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/folio/pkg/account"
	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/content"
	"github.com/doodlesbykumbi/folio/pkg/metrics"
	"github.com/doodlesbykumbi/folio/pkg/server/middleware"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

// Stores groups the persistence backends the server is built on.
type Stores struct {
	Users    store.UsersStore
	Blogs    store.BlogsStore
	Projects store.ProjectsStore
	Skills   store.SkillsStore
	Contacts store.ContactsStore
	Health   store.HealthStore
}

type Server struct {
	Config *config.FolioConfig
	Router *mux.Router
	Logger *slog.Logger

	// AccessLog receives one combined-format line per request
	AccessLog io.Writer

	Tokens        *token.Service
	Authenticator *middleware.Authenticator
	Metrics       *metrics.Metrics

	Accounts *account.Service
	Blogs    *content.BlogService
	Projects *content.ProjectService
	Skills   *content.SkillService
	Contacts *content.ContactService

	HealthStore store.HealthStore

	mu  sync.Mutex
	srv *http.Server
}

func NewServer(
	cfg *config.FolioConfig,
	stores Stores,
	tokens *token.Service,
	logger *slog.Logger,
) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	accounts, err := account.NewService(stores.Users, tokens, cfg.BcryptCost, logger)
	if err != nil {
		return nil, fmt.Errorf("account service: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Router:        mux.NewRouter(),
		Logger:        logger,
		AccessLog:     os.Stdout,
		Tokens:        tokens,
		Authenticator: middleware.NewAuthenticator(tokens, stores.Users, logger),
		Accounts:      accounts,
		Blogs:         content.NewBlogService(stores.Blogs, logger),
		Projects:      content.NewProjectService(stores.Projects, logger),
		Skills:        content.NewSkillService(stores.Skills, logger),
		Contacts:      content.NewContactService(stores.Contacts, stores.Users, logger),
		HealthStore:   stores.Health,
	}

	if cfg.MetricsEnabled {
		s.Metrics = metrics.New()
		s.Router.Use(s.Metrics.Middleware)
		s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}

	return s, nil
}

// Handler wraps the router with access logging, panic recovery, CORS and
// client address tracking.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.ClientIP(h)
	h = s.proxyHeaders(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.Logger}),
		handlers.PrintRecoveryStack(true),
	)(h)
	return handlers.LoggingHandler(s.AccessLog, h)
}

// proxyHeaders honors X-Forwarded-For and friends from trusted proxies only.
func (s *Server) proxyHeaders(next http.Handler) http.Handler {
	proxied := handlers.ProxyHeaders(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && s.Config.IsTrustedProxy(host) {
			proxied.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start listens on the configured address and blocks until the server stops.
// It returns nil after a graceful Shutdown.
func (s *Server) Start() error {
	srv := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.Logger.Info("server listening", "addr", srv.Addr, "store", s.Config.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic serving request", "panic", fmt.Sprint(v...))
}
