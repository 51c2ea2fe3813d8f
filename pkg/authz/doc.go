// Package authz decides whether an identity may act on an ownable resource.
//
// Rules are not written per handler. Each resource Kind has one Policy in the
// Policies table, parameterized by the owner column and whether admins may
// override ownership:
//
//	blog     author_id           strict-owner
//	project  author_id           owner-or-admin
//	skill    author_id           owner-or-admin
//	contact  portfolio_owner_id  recipient-owner, reads gated too
//	user     id                  strict-owner, reads gated too
//
// Authorize returns nil, ErrUnauthenticated or ErrForbidden. Whether a
// resource exists is the caller's concern; a missing resource is reported
// by the store as not found before the policy runs.
package authz
