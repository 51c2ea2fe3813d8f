package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput is returned when required registration or profile fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = store.ErrDuplicateEmail
)

// TokenIssuer signs bearer tokens for an identity id.
type TokenIssuer interface {
	Issue(identityID string) (string, error)
}

// Session is a user together with a freshly issued token.
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfilePatch carries the profile fields a caller supplied. Nil fields are left unchanged.
type ProfilePatch struct {
	Name     *string       `json:"name"`
	Email    *string       `json:"email"`
	Password *string       `json:"password"`
	Avatar   *string       `json:"avatar"`
	Bio      *string       `json:"bio"`
	Title    *string       `json:"title"`
	Social   *model.Social `json:"social"`
}

// Service handles registration, login and profile updates.
type Service struct {
	users  store.UsersStore
	tokens TokenIssuer
	cost   int
	logger *slog.Logger

	dummyHash []byte
}

// NewService creates a new Service hashing passwords at cost.
func NewService(users store.UsersStore, tokens TokenIssuer, cost int, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	// Compared against when the email is unknown so that both login
	// failures take one bcrypt comparison at the configured cost.
	dummy, err := bcrypt.GenerateFromPassword([]byte("folio-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &Service{
		users:     users,
		tokens:    tokens,
		cost:      cost,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with role user and issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", ErrInvalidInput)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.audit(ctx, "register", email, ErrDuplicateEmail)
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			s.audit(ctx, "register", email, err)
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	s.audit(ctx, "register", email, nil)
	return s.session(user)
}

// Login verifies credentials and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.audit(ctx, "login", email, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.audit(ctx, "login", email, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	s.audit(ctx, "login", email, nil)
	return s.session(user)
}

// Profile returns a fresh read of the caller's user record.
func (s *Service) Profile(ctx context.Context, caller *identity.Identity) (*model.User, error) {
	if caller == nil {
		return nil, identity.ErrUnknownIdentity
	}
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, identity.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies patch to the caller's own record and issues a new token.
// A supplied password is re-hashed; the plaintext is never stored.
func (s *Service) UpdateProfile(ctx context.Context, caller *identity.Identity, patch ProfilePatch) (*Session, error) {
	user, err := s.Profile(ctx, caller)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, ErrDuplicateEmail
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("find user: %w", err)
			}
			user.Email = email
		}
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Title != nil {
		user.Title = *patch.Title
	}
	if patch.Social != nil {
		user.Social = *patch.Social
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, store.ErrNotFound):
			return nil, identity.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if patch.Password != nil {
		s.audit(ctx, "password-change", user.Email, nil)
	}
	return s.session(user)
}

// HashPassword hashes a password at the service's cost, for operator tooling.
func (s *Service) HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	return s.hash(password)
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) session(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

func (s *Service) audit(ctx context.Context, method, subject string, err error) {
	event := audit.AuthenticateEvent{
		Method:   method,
		Subject:  subject,
		ClientIP: identity.ClientIP(ctx),
		Success:  err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordLength)
	}
	return nil
}
