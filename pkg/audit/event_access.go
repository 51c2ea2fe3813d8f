package audit

import "fmt"

// AccessEvent records an ownership decision.
type AccessEvent struct {
	UserID     string
	ClientIP   string
	Kind       string
	ResourceID string
	Action     string
	Policy     string
	Allowed    bool
}

func (e AccessEvent) MessageID() string {
	return "access"
}

func (e AccessEvent) Message() string {
	verdict := "denied"
	if e.Allowed {
		verdict = "allowed"
	}
	return fmt.Sprintf("%s %s to %s %s %s", e.UserID, verdict, e.Action, e.Kind, e.ResourceID)
}

func (e AccessEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AccessEvent) Facility() int {
	return FacilityAuth
}

func (e AccessEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"kind": e.Kind,
			"id":   e.ResourceID,
		},
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": e.Action,
		},
		SDIDDecision: {
			"policy":  e.Policy,
			"allowed": fmt.Sprintf("%t", e.Allowed),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
