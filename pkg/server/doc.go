// Package server provides the HTTP server for the folio API.
//
// The Server struct wires the token service, the identity resolver and the
// content services onto a gorilla/mux router. Endpoints are registered by the
// endpoints subpackage:
//
//	srv, err := server.NewServer(cfg, stores, tokens, logger)
//	if err != nil {
//	    return err
//	}
//	endpoints.RegisterAll(srv)
//	return srv.Start()
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - Authenticator: bearer token resolution for protected routes
//   - Accounts: registration, login and profile updates
//   - Blogs, Projects, Skills, Contacts: owned content
//   - Metrics: prometheus collectors, when enabled
//
// Handler wraps the router with the gorilla/handlers access log, panic
// recovery and CORS.
package server
