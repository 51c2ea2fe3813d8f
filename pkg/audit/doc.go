// Package audit provides audit logging for folio's security decisions.
//
// Events are written as RFC5424 syslog lines and, when an audit database is
// configured, persisted to the messages table.
//
// # Event Types
//
//   - AuthenticateEvent: registration, login and credential rotation
//   - ResolveEvent: a bearer credential rejected by the identity resolver
//   - AccessEvent: an ownership decision on a resource
//   - MutationEvent: a completed create, update or delete
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Method:   "login",
//	    Subject:  email,
//	    ClientIP: ip,
//	    Success:  false,
//	})
package audit
