package endpoints

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/doodlesbykumbi/folio/pkg/account"
	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/content"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/server"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

// errorWriter maps service errors to HTTP responses in one place.
type errorWriter struct {
	logger *slog.Logger

	// concealForbidden renders ErrForbidden exactly like ErrNotFound
	concealForbidden bool
}

func newErrorWriter(s *server.Server) *errorWriter {
	return &errorWriter{logger: s.Logger, concealForbidden: s.Config.ConcealForbidden}
}

// write responds with the status for err. noun names the resource in
// not-found messages, e.g. "blog".
func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, err error, noun string) {
	code, message := e.classify(err, noun)
	if code >= http.StatusInternalServerError {
		e.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondWithError(w, code, message)
}

func (e *errorWriter) classify(err error, noun string) (int, string) {
	notFound := noun + " not found"

	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, authz.ErrUnauthenticated),
		errors.Is(err, identity.ErrUnknownIdentity),
		errors.Is(err, token.ErrMalformed),
		errors.Is(err, token.ErrSignatureInvalid),
		errors.Is(err, token.ErrExpired):
		return http.StatusUnauthorized, "not authorized"
	case errors.Is(err, authz.ErrForbidden):
		if e.concealForbidden {
			return http.StatusNotFound, notFound
		}
		return http.StatusForbidden, "not authorized to access this " + noun
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, store.ErrDuplicateSlug):
		return http.StatusConflict, "slug already in use"
	case errors.Is(err, content.ErrInvalidInput),
		errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
