package endpoints

import (
	"github.com/doodlesbykumbi/folio/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterBlogsEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterSkillsEndpoints(srv)
	RegisterContactsEndpoints(srv)
}
