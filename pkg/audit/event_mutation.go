package audit

import "fmt"

// MutationEvent records a completed create, update or delete.
type MutationEvent struct {
	UserID     string
	ClientIP   string
	Kind       string
	ResourceID string
	Operation  string
}

func (e MutationEvent) MessageID() string {
	return e.Operation
}

func (e MutationEvent) Message() string {
	return fmt.Sprintf("%s %sd %s %s", e.UserID, e.Operation, e.Kind, e.ResourceID)
}

func (e MutationEvent) Severity() Severity {
	return SeverityInfo
}

func (e MutationEvent) Facility() int {
	return FacilityUser
}

func (e MutationEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"kind": e.Kind,
			"id":   e.ResourceID,
		},
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
