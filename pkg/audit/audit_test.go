package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	event := AuthenticateEvent{
		Method:   "login",
		Subject:  "alice@example.com",
		ClientIP: "192.168.1.1",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	// <10*8+6>1 ...
	if !strings.HasPrefix(output, "<86>1 2024-05-01T12:00:00.000Z ") {
		t.Errorf("unexpected header: %q", output)
	}
	if !strings.Contains(output, " folio ") {
		t.Error("Expected app name 'folio' in output")
	}
	if !strings.Contains(output, " authn ") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, `[auth@32473 method="login" user="alice@example.com"][client@32473 ip="192.168.1.1"]`) {
		t.Errorf("Expected sorted structured data in output, got %q", output)
	}
	if !strings.HasSuffix(output, "alice@example.com succeeded login\n") {
		t.Errorf("Expected message at end of line, got %q", output)
	}
}

func TestEscapeSDValue(t *testing.T) {
	got := escapeSDValue(`a\b"c]d`)
	want := `"a\\b\"c\]d"`
	if got != want {
		t.Errorf("escapeSDValue() = %s, want %s", got, want)
	}
}

func TestFormatStructuredDataEmpty(t *testing.T) {
	if got := formatStructuredData(nil); got != "" {
		t.Errorf("formatStructuredData(nil) = %q, want empty", got)
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AuthenticateEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful registration",
			event: AuthenticateEvent{
				Method:   "register",
				Subject:  "alice@example.com",
				ClientIP: "10.0.0.1",
				Success:  true,
			},
			wantMsg:   "succeeded register",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name: "failed login",
			event: AuthenticateEvent{
				Method:       "login",
				Subject:      "alice@example.com",
				ClientIP:     "10.0.0.1",
				ErrorMessage: "invalid credentials",
			},
			wantMsg:   "failed login: invalid credentials",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestResolveEvent(t *testing.T) {
	event := ResolveEvent{Reason: "identity_gone", Subject: "u1", ClientIP: "10.0.0.1", Path: "/api/blogs"}

	if event.MessageID() != "resolve" {
		t.Errorf("MessageID() = %v, want resolve", event.MessageID())
	}
	if event.Message() != "request to /api/blogs rejected: identity_gone" {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.StructuredData()[SDIDAuth]["user"] != "u1" {
		t.Error("Expected subject in auth structured data")
	}

	anonymous := ResolveEvent{Reason: "no_credential", Path: "/api/blogs"}
	if _, ok := anonymous.StructuredData()[SDIDAuth]["user"]; ok {
		t.Error("Expected no user param without a subject")
	}
}

func TestAccessEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   AccessEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "allowed",
			event:   AccessEvent{UserID: "u1", Kind: "blog", ResourceID: "b1", Action: "delete", Policy: "strict-owner", Allowed: true},
			wantMsg: "u1 allowed to delete blog b1",
			wantSev: SeverityInfo,
		},
		{
			name:    "denied",
			event:   AccessEvent{UserID: "u2", Kind: "blog", ResourceID: "b1", Action: "delete", Policy: "strict-owner"},
			wantMsg: "u2 denied to delete blog b1",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.StructuredData()[SDIDDecision]["policy"] != "strict-owner" {
				t.Error("Expected policy in decision structured data")
			}
		})
	}
}

func TestMutationEvent(t *testing.T) {
	event := MutationEvent{UserID: "u1", Kind: "project", ResourceID: "p1", Operation: "update"}

	if event.MessageID() != "update" {
		t.Errorf("MessageID() = %v, want update", event.MessageID())
	}
	if event.Message() != "u1 updated project p1" {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.Facility() != FacilityUser {
		t.Errorf("Facility() = %v, want %v", event.Facility(), FacilityUser)
	}
}

func TestLogRespectsEnabled(t *testing.T) {
	var buf bytes.Buffer
	original := DefaultLogger
	DefaultLogger = NewLogger()
	DefaultLogger.SetWriter(&buf)
	defer func() {
		DefaultLogger = original
		SetEnabled(true)
	}()

	SetEnabled(false)
	Log(MutationEvent{UserID: "u1", Kind: "skill", ResourceID: "s1", Operation: "create"})
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}

	SetEnabled(true)
	Log(MutationEvent{UserID: "u1", Kind: "skill", ResourceID: "s1", Operation: "create"})
	if !strings.Contains(buf.String(), "u1 created skill s1") {
		t.Errorf("expected event in output, got %q", buf.String())
	}
}
