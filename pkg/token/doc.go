// Package token issues and verifies folio bearer tokens.
//
// Tokens are compact HS256 JWTs carrying the identity id (sub), the issue
// time (iat), the expiry (exp) and a random token id (jti). They are not
// stored server side and stay valid until they expire.
//
// # Basic Usage
//
//	svc, err := token.NewService(secret, token.WithIssuer("folio"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := svc.Issue(user.ID)
//
//	claims, err := svc.Verify(raw)
//	switch {
//	case errors.Is(err, token.ErrExpired):
//	case errors.Is(err, token.ErrSignatureInvalid):
//	case errors.Is(err, token.ErrMalformed):
//	}
package token
