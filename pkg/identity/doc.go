// Package identity provides authenticated identity management for folio requests.
//
// An Identity is what the request pipeline knows about the caller once a
// bearer token has been verified and its subject loaded from the user store.
// It never carries the password hash.
//
// # Basic Usage
//
//	id := identity.FromUser(user).
//	    WithToken(claims.ID, claims.IssuedAt, claims.ExpiresAt).
//	    WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// # Identity vs Token
//
// The token package handles signing and verifying the raw bearer token.
// An Identity exists only after the token's subject has been found in the
// user store; a valid token whose subject is gone yields ErrUnknownIdentity.
package identity
