package authz

import (
	"errors"

	"github.com/doodlesbykumbi/folio/pkg/identity"
)

// ErrUnauthenticated is returned when no identity is present.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when an authenticated identity may not act on a resource.
var ErrForbidden = errors.New("forbidden")

// Ownable is any persisted resource carrying an owner reference.
type Ownable interface {
	OwnerRef() string
}

// Policy is the authorization rule for one resource kind.
type Policy struct {
	Kind Kind
	// OwnerField is the storage column holding the owner reference.
	OwnerField string
	// AdminOverride lets admins act on resources they do not own.
	AdminOverride bool
	// GateRead applies the rule to reads as well as mutations.
	GateRead bool
}

// Policies is the per-kind policy table.
var Policies = map[Kind]Policy{
	KindBlog:    {Kind: KindBlog, OwnerField: "author_id"},
	KindProject: {Kind: KindProject, OwnerField: "author_id", AdminOverride: true},
	KindSkill:   {Kind: KindSkill, OwnerField: "author_id", AdminOverride: true},
	KindContact: {Kind: KindContact, OwnerField: "portfolio_owner_id", GateRead: true},
	KindUser:    {Kind: KindUser, OwnerField: "id", GateRead: true},
}

// For returns the policy for kind. Unknown kinds get a policy that denies everything.
func For(kind Kind) Policy {
	if p, ok := Policies[kind]; ok {
		return p
	}
	return Policy{Kind: kind}
}

// Authorize decides whether id may mutate res.
// res must have been loaded in the current request.
func (p Policy) Authorize(id *identity.Identity, res Ownable) error {
	if id == nil || id.ID == "" {
		return ErrUnauthenticated
	}
	if p.OwnerField == "" || res == nil {
		return ErrForbidden
	}
	if owner := res.OwnerRef(); owner != "" && owner == id.ID {
		return nil
	}
	if p.AdminOverride && id.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// AuthorizeRead decides whether id may read res. Kinds without GateRead are public.
func (p Policy) AuthorizeRead(id *identity.Identity, res Ownable) error {
	if !p.GateRead {
		return nil
	}
	return p.Authorize(id, res)
}

// Variant names the rule shape, for logs and audit records.
func (p Policy) Variant() string {
	switch {
	case p.OwnerField == "":
		return "deny-all"
	case p.AdminOverride:
		return "owner-or-admin"
	case p.Kind == KindContact:
		return "recipient-owner"
	default:
		return "strict-owner"
	}
}
