package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/folio/pkg/content"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server"
)

const nounContact = "contact message"

// ContactCreatedResponse is returned to the sender of a contact message
type ContactCreatedResponse struct {
	Message string         `json:"message"`
	Contact *model.Contact `json:"contact"`
}

// RegisterContactsEndpoints registers the contact message routes
func RegisterContactsEndpoints(s *server.Server) {
	errs := newErrorWriter(s)
	auth := s.Authenticator
	contacts := s.Contacts

	s.Router.HandleFunc("/api/contact", handleCreateContact(contacts, errs)).Methods("POST")
	s.Router.Handle("/api/contact", auth.Middleware(handleInbox(contacts, errs))).Methods("GET")
	s.Router.Handle("/api/contact/{id}", auth.Middleware(handleGetContact(contacts, errs))).Methods("GET")
	s.Router.Handle("/api/contact/{id}", auth.Middleware(handleUpdateContact(contacts, errs))).Methods("PUT")
	s.Router.Handle("/api/contact/{id}", auth.Middleware(handleDeleteContact(contacts, errs))).Methods("DELETE")
}

func handleCreateContact(contacts *content.ContactService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in content.ContactInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounContact)
			return
		}

		contact, err := contacts.Create(r.Context(), in)
		if err != nil {
			errs.write(w, r, err, nounContact)
			return
		}
		respondWithJSON(w, http.StatusCreated, ContactCreatedResponse{
			Message: "Message sent successfully",
			Contact: contact,
		})
	}
}

func handleInbox(contacts *content.ContactService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())
		status := model.ContactStatus(r.URL.Query().Get("status"))

		list, err := contacts.Inbox(r.Context(), caller, status)
		if err != nil {
			errs.write(w, r, err, nounContact)
			return
		}
		respondWithJSON(w, http.StatusOK, orEmpty(list))
	}
}

func handleGetContact(contacts *content.ContactService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		contact, err := contacts.Get(r.Context(), caller, mux.Vars(r)["id"])
		if err != nil {
			errs.write(w, r, err, nounContact)
			return
		}
		respondWithJSON(w, http.StatusOK, contact)
	}
}

func handleUpdateContact(contacts *content.ContactService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var patch content.ContactPatch
		if err := decodeJSON(r, &patch); err != nil {
			errs.write(w, r, err, nounContact)
			return
		}

		contact, err := contacts.Update(r.Context(), caller, mux.Vars(r)["id"], patch)
		if err != nil {
			errs.write(w, r, err, nounContact)
			return
		}
		respondWithJSON(w, http.StatusOK, contact)
	}
}

func handleDeleteContact(contacts *content.ContactService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		if err := contacts.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
			errs.write(w, r, err, nounContact)
			return
		}
		respondWithMessage(w, http.StatusOK, "Contact message deleted successfully")
	}
}
