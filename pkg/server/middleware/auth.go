package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"regexp"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^(?i:bearer)\s+(\S+)\s*$`)

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// IdentityLoader loads the stored user a token refers to.
type IdentityLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Reason says why a credential was rejected.
type Reason int

const (
	NoCredential Reason = iota + 1
	InvalidCredential
	IdentityGone
)

func (r Reason) String() string {
	switch r {
	case NoCredential:
		return "no credential"
	case InvalidCredential:
		return "invalid credential"
	case IdentityGone:
		return "identity gone"
	}
	return "unknown"
}

// Outcome is the result of resolving a request's credential.
// It is either Resolved or Rejected.
type Outcome interface {
	outcome()
}

// Resolved carries the identity behind a valid credential.
type Resolved struct {
	Identity *identity.Identity
}

// Rejected carries the reason no identity could be resolved.
type Rejected struct {
	Reason  Reason
	Subject string
	Err     error
}

func (Resolved) outcome() {}
func (Rejected) outcome() {}

// Authenticator resolves bearer tokens to identities.
type Authenticator struct {
	tokens TokenVerifier
	users  IdentityLoader
	logger *slog.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(tokens TokenVerifier, users IdentityLoader, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Resolve turns the Authorization header of r into an Outcome. The identity is
// always re-read from the store, so a deleted user's tokens stop working.
func (a *Authenticator) Resolve(r *http.Request) Outcome {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Rejected{Reason: NoCredential}
	}

	matches := bearerRegex.FindStringSubmatch(header)
	if len(matches) != 2 {
		return Rejected{Reason: NoCredential}
	}

	claims, err := a.tokens.Verify(matches[1])
	if err != nil {
		return Rejected{Reason: InvalidCredential, Err: err}
	}

	user, err := a.users.FindByID(r.Context(), claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return Rejected{Reason: IdentityGone, Subject: claims.Subject, Err: identity.ErrUnknownIdentity}
	}
	if err != nil {
		return Rejected{Reason: InvalidCredential, Subject: claims.Subject, Err: err}
	}

	id := identity.FromUser(user).
		WithToken(claims.ID, claims.IssuedAt, claims.ExpiresAt).
		WithRemoteIP(remoteIP(r))
	return Resolved{Identity: id}
}

// Middleware rejects every request without a resolvable identity with 401.
// The response does not say which check failed.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch out := a.Resolve(r).(type) {
		case Resolved:
			next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), out.Identity)))
		case Rejected:
			a.reject(r, out)
			writeUnauthorized(w)
		default:
			writeUnauthorized(w)
		}
	})
}

// Optional attaches the identity when one resolves and otherwise serves the
// request anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if out, ok := a.Resolve(r).(Resolved); ok {
			r = r.WithContext(identity.Set(r.Context(), out.Identity))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) reject(r *http.Request, out Rejected) {
	attrs := []any{"reason", out.Reason.String(), "path", r.URL.Path}
	if out.Subject != "" {
		attrs = append(attrs, "subject", out.Subject)
	}
	if out.Err != nil {
		attrs = append(attrs, "error", out.Err)
	}

	if out.Reason == InvalidCredential && out.Subject != "" {
		// The token was fine; loading the user failed.
		a.logger.Error("identity lookup failed", attrs...)
	} else {
		a.logger.Info("request rejected", attrs...)
	}

	audit.Log(audit.ResolveEvent{
		Reason:   out.Reason.String(),
		Subject:  out.Subject,
		ClientIP: identity.ClientIP(r.Context()),
		Path:     r.URL.Path,
	})
}

// ClientIP records the caller's address in the request context for audit events.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := remoteIP(r); ip != nil {
			r = r.WithContext(identity.WithClientIP(r.Context(), ip.String()))
		}
		next.ServeHTTP(w, r)
	})
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not authorized"})
}
