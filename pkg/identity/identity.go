package identity

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// ErrUnknownIdentity is returned when a token is valid but its subject no longer exists.
var ErrUnknownIdentity = errors.New("identity no longer exists")

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated principal for a request.
// It combines token claims with the stored user record, minus the password hash.
type Identity struct {
	// Stored user attributes
	ID     string
	Email  string
	Name   string
	Avatar string
	Role   model.Role

	// Token claims
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP net.IP
}

// FromUser creates an Identity from a stored user.
func FromUser(u *model.User) *Identity {
	return &Identity{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}

// WithToken records the claims of the token the identity was resolved from.
func (i *Identity) WithToken(tokenID string, issuedAt, expiresAt time.Time) *Identity {
	i.TokenID = tokenID
	i.IssuedAt = issuedAt
	i.ExpiresAt = expiresAt
	return i
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsAdmin returns true if the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == model.RoleAdmin
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok && id != nil
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
