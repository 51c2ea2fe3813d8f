package audit

import "fmt"

// ResolveEvent records a request whose bearer credential was rejected.
type ResolveEvent struct {
	Reason   string
	Subject  string
	ClientIP string
	Path     string
}

func (e ResolveEvent) MessageID() string {
	return "resolve"
}

func (e ResolveEvent) Message() string {
	return fmt.Sprintf("request to %s rejected: %s", e.Path, e.Reason)
}

func (e ResolveEvent) Severity() Severity {
	return SeverityNotice
}

func (e ResolveEvent) Facility() int {
	return FacilityAuth
}

func (e ResolveEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"reason": e.Reason,
		},
		SDIDAction: {
			"path": e.Path,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Subject != "" {
		sd[SDIDAuth]["user"] = e.Subject
	}
	return sd
}
