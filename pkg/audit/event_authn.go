package audit

import "fmt"

// AuthenticateEvent records a credential check: register, login or profile update.
type AuthenticateEvent struct {
	Method       string
	Subject      string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s succeeded %s", e.Subject, e.Method)
	}
	msg := fmt.Sprintf("%s failed %s", e.Subject, e.Method)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"method": e.Method,
			"user":   e.Subject,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
