// Package endpoints registers the folio HTTP API on a server.Server.
//
// Handlers decode the request, call a service with the identity the
// middleware resolved, and render the result. Every service error goes
// through errorWriter, which is the only place errors become status codes:
//
//	401  authz.ErrUnauthenticated, identity.ErrUnknownIdentity, token errors,
//	     account.ErrInvalidCredentials
//	403  authz.ErrForbidden (404 when conceal_forbidden is set)
//	404  store.ErrNotFound
//	400  invalid input, duplicate email, malformed JSON
//	409  duplicate blog slug
//	500  anything else, logged and rendered without detail
package endpoints
