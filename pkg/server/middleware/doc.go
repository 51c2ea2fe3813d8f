// Package middleware resolves bearer tokens into request identities.
//
// Resolve returns a sealed Outcome: Resolved carries the identity, Rejected
// carries one of NoCredential, InvalidCredential or IdentityGone. Middleware
// lets only Resolved requests through and answers everything else with an
// undifferentiated 401. Optional is used on public routes that personalize
// their response for signed-in callers.
//
//	auth := middleware.NewAuthenticator(tokens, usersStore, logger)
//	protected := router.PathPrefix("/api/blogs").Subrouter()
//	protected.Use(auth.Middleware)
package middleware
