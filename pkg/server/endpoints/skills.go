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

const nounSkill = "skill"

// RegisterSkillsEndpoints registers the skill routes
func RegisterSkillsEndpoints(s *server.Server) {
	errs := newErrorWriter(s)
	auth := s.Authenticator
	skills := s.Skills

	s.Router.HandleFunc("/api/skills", handleListSkills(skills, errs)).Methods("GET")
	s.Router.HandleFunc("/api/skills/{id}", handleGetSkill(skills, errs)).Methods("GET")
	s.Router.Handle("/api/skills", auth.Middleware(handleCreateSkill(skills, errs))).Methods("POST")
	s.Router.Handle("/api/skills/{id}", auth.Middleware(handleUpdateSkill(skills, errs))).Methods("PUT")
	s.Router.Handle("/api/skills/{id}", auth.Middleware(handleDeleteSkill(skills, errs))).Methods("DELETE")
}

func handleListSkills(skills *content.SkillService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := skills.List(r.Context(), store.SkillFilter{
			Category: model.SkillCategory(q.Get("category")),
			AuthorID: q.Get("user"),
		})
		if err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}
		respondWithJSON(w, http.StatusOK, orEmpty(list))
	}
}

func handleGetSkill(skills *content.SkillService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill, err := skills.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}
		respondWithJSON(w, http.StatusOK, skill)
	}
}

func handleCreateSkill(skills *content.SkillService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.SkillInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}

		skill, err := skills.Create(r.Context(), caller, in)
		if err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}
		respondWithJSON(w, http.StatusCreated, skill)
	}
}

func handleUpdateSkill(skills *content.SkillService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.SkillInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}

		skill, err := skills.Update(r.Context(), caller, mux.Vars(r)["id"], in)
		if err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}
		respondWithJSON(w, http.StatusOK, skill)
	}
}

func handleDeleteSkill(skills *content.SkillService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		if err := skills.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
			errs.write(w, r, err, nounSkill)
			return
		}
		respondWithMessage(w, http.StatusOK, "Skill deleted successfully")
	}
}
