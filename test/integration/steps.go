package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
)

var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z0-9_.-]+)\}`)

type session struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	sessions     map[string]session
	remembered   map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:         tc,
		sessions:   make(map[string]session),
		remembered: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})

	// Background steps
	sc.Step(`^the folio API is running$`, s.theFolioAPIIsRunning)
	sc.Step(`^a user "([^"]*)" is registered$`, s.aUserIsRegistered)
	sc.Step(`^"([^"]*)" is an admin$`, s.isAnAdmin)

	// Request steps
	sc.Step(`^"([^"]*)" sends a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.userSendsRequest)
	sc.Step(`^"([^"]*)" sends a (GET|POST|PUT|DELETE) request to "([^"]*)" with:$`, s.userSendsRequestWith)
	sc.Step(`^an anonymous visitor sends a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.anonymousSendsRequest)
	sc.Step(`^an anonymous visitor sends a (GET|POST|PUT|DELETE) request to "([^"]*)" with:$`, s.anonymousSendsRequestWith)
	sc.Step(`^I remember the "([^"]*)" field as "([^"]*)"$`, s.iRememberTheFieldAs)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the "([^"]*)" field should be "([^"]*)"$`, s.theFieldShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAListOf)
}

func (s *StepsContext) theFolioAPIIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aUserIsRegistered(name string) error {
	body := fmt.Sprintf(`{"name":%q,"email":"%s@example.com","password":"secret-%s"}`, name, name, name)
	if err := s.send("", http.MethodPost, "/api/users/register", body); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("register %s: status %d: %s", name, s.response.StatusCode, s.responseBody)
	}

	var sess session
	if err := json.Unmarshal(s.responseBody, &sess); err != nil {
		return err
	}
	s.sessions[name] = sess
	s.remembered[name] = sess.User.ID
	return nil
}

func (s *StepsContext) isAnAdmin(name string) error {
	sess, ok := s.sessions[name]
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}
	return s.tc.DB.Exec(`UPDATE users SET role = 'admin' WHERE id = ?`, sess.User.ID).Error
}

func (s *StepsContext) userSendsRequest(name, method, path string) error {
	return s.userSendsRequestWith(name, method, path, nil)
}

func (s *StepsContext) userSendsRequestWith(name, method, path string, body *godog.DocString) error {
	sess, ok := s.sessions[name]
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}
	return s.send(sess.Token, method, path, docString(body))
}

func (s *StepsContext) anonymousSendsRequest(method, path string) error {
	return s.send("", method, path, "")
}

func (s *StepsContext) anonymousSendsRequestWith(method, path string, body *godog.DocString) error {
	return s.send("", method, path, docString(body))
}

func (s *StepsContext) iRememberTheFieldAs(field, name string) error {
	value, err := s.field(field)
	if err != nil {
		return err
	}
	s.remembered[name] = value
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theFieldShouldBe(field, expected string) error {
	value, err := s.field(field)
	if err != nil {
		return err
	}
	if expected = s.expand(expected); value != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, value)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), s.expand(text)) {
		return fmt.Errorf("expected response to contain %q, got: %s", text, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(string(s.responseBody), s.expand(text)) {
		return fmt.Errorf("expected response not to contain %q, got: %s", text, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeAListOf(n int) error {
	var list []json.RawMessage
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return fmt.Errorf("response is not a list: %s", s.responseBody)
	}
	if len(list) != n {
		return fmt.Errorf("expected %d items, got %d", n, len(list))
	}
	return nil
}

func (s *StepsContext) send(bearer, method, path, body string) error {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(s.expand(body))
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+s.expand(path), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// expand replaces {name} with remembered values; unknown names are left as is.
func (s *StepsContext) expand(text string) string {
	return placeholderRegex.ReplaceAllStringFunc(text, func(m string) string {
		if v, ok := s.remembered[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// field reads a dotted path such as "contact.id" from the JSON response.
func (s *StepsContext) field(path string) (string, error) {
	var doc interface{}
	if err := json.Unmarshal(s.responseBody, &doc); err != nil {
		return "", fmt.Errorf("response is not JSON: %s", s.responseBody)
	}

	for _, key := range strings.Split(path, ".") {
		obj, ok := doc.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("no field %q in %s", path, s.responseBody)
		}
		if doc, ok = obj[key]; !ok {
			return "", fmt.Errorf("no field %q in %s", path, s.responseBody)
		}
	}

	switch v := doc.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		raw, _ := json.Marshal(v)
		return string(raw), nil
	}
}

func docString(body *godog.DocString) string {
	if body == nil {
		return ""
	}
	return body.Content
}
