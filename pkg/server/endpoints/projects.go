package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/folio/pkg/content"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

const nounProject = "project"

// RegisterProjectsEndpoints registers the project routes
func RegisterProjectsEndpoints(s *server.Server) {
	errs := newErrorWriter(s)
	auth := s.Authenticator
	projects := s.Projects

	s.Router.HandleFunc("/api/projects", handleListProjects(projects, errs)).Methods("GET")
	s.Router.HandleFunc("/api/projects/{id}", handleGetProject(projects, errs)).Methods("GET")
	s.Router.Handle("/api/projects", auth.Middleware(handleCreateProject(projects, errs))).Methods("POST")
	s.Router.Handle("/api/projects/{id}", auth.Middleware(handleUpdateProject(projects, errs))).Methods("PUT")
	s.Router.Handle("/api/projects/{id}", auth.Middleware(handleDeleteProject(projects, errs))).Methods("DELETE")
}

func handleListProjects(projects *content.ProjectService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		featured, err := queryBool(r, "featured")
		if err != nil {
			errs.write(w, r, err, nounProject)
			return
		}

		list, err := projects.List(r.Context(), store.ProjectFilter{
			Status:   model.ProjectStatus(q.Get("status")),
			Category: model.ProjectCategory(q.Get("category")),
			Featured: featured,
			AuthorID: q.Get("user"),
		})
		if err != nil {
			errs.write(w, r, err, nounProject)
			return
		}
		respondWithJSON(w, http.StatusOK, orEmpty(list))
	}
}

func handleGetProject(projects *content.ProjectService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := projects.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			errs.write(w, r, err, nounProject)
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleCreateProject(projects *content.ProjectService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.ProjectInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounProject)
			return
		}

		project, err := projects.Create(r.Context(), caller, in)
		if err != nil {
			errs.write(w, r, err, nounProject)
			return
		}
		respondWithJSON(w, http.StatusCreated, project)
	}
}

func handleUpdateProject(projects *content.ProjectService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.ProjectInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounProject)
			return
		}

		project, err := projects.Update(r.Context(), caller, mux.Vars(r)["id"], in)
		if err != nil {
			errs.write(w, r, err, nounProject)
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleDeleteProject(projects *content.ProjectService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		if err := projects.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
			errs.write(w, r, err, nounProject)
			return
		}
		respondWithMessage(w, http.StatusOK, "Project deleted successfully")
	}
}
