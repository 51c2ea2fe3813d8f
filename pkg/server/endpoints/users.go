package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/folio/pkg/account"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/server"
)

const nounUser = "user"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUsersEndpoints registers registration, login and profile routes
func RegisterUsersEndpoints(s *server.Server) {
	errs := newErrorWriter(s)
	auth := s.Authenticator

	s.Router.HandleFunc("/api/users/register", handleRegister(s.Accounts, errs)).Methods("POST")
	s.Router.HandleFunc("/api/users/login", handleLogin(s.Accounts, errs)).Methods("POST")
	s.Router.Handle("/api/users/profile", auth.Middleware(handleGetProfile(s.Accounts, errs))).Methods("GET")
	s.Router.Handle("/api/users/profile", auth.Middleware(handleUpdateProfile(s.Accounts, errs))).Methods("PUT")
}

func handleRegister(accounts *account.Service, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in account.RegisterInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounUser)
			return
		}

		session, err := accounts.Register(r.Context(), in)
		if err != nil {
			errs.write(w, r, err, nounUser)
			return
		}
		respondWithJSON(w, http.StatusCreated, session)
	}
}

func handleLogin(accounts *account.Service, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginRequest
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounUser)
			return
		}

		session, err := accounts.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			errs.write(w, r, err, nounUser)
			return
		}
		respondWithJSON(w, http.StatusOK, session)
	}
}

func handleGetProfile(accounts *account.Service, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		user, err := accounts.Profile(r.Context(), caller)
		if err != nil {
			errs.write(w, r, err, nounUser)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleUpdateProfile(accounts *account.Service, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var patch account.ProfilePatch
		if err := decodeJSON(r, &patch); err != nil {
			errs.write(w, r, err, nounUser)
			return
		}

		session, err := accounts.UpdateProfile(r.Context(), caller, patch)
		if err != nil {
			errs.write(w, r, err, nounUser)
			return
		}
		respondWithJSON(w, http.StatusOK, session)
	}
}
