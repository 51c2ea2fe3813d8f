package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// ContactInput is a message from an anonymous visitor to a portfolio owner.
type ContactInput struct {
	PortfolioOwner string `json:"portfolioOwner"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
}

// ContactPatch is the recipient's update to a message. Nil fields are not supplied.
type ContactPatch struct {
	Status       *model.ContactStatus `json:"status"`
	Replied      *bool                `json:"replied"`
	ReplyMessage *string              `json:"replyMessage"`
}

// ContactService manages messages under the recipient-owner policy.
type ContactService struct {
	contacts store.ContactsStore
	users    store.UsersStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(contacts store.ContactsStore, users store.UsersStore, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{contacts: contacts, users: users, logger: logger, now: time.Now}
}

// Create stores a message for an existing recipient. No identity is required.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		PortfolioOwnerID: strings.TrimSpace(in.PortfolioOwner),
		Name:             strings.TrimSpace(in.Name),
		Email:            strings.TrimSpace(in.Email),
		Subject:          strings.TrimSpace(in.Subject),
		Message:          strings.TrimSpace(in.Message),
		Phone:            strings.TrimSpace(in.Phone),
		Company:          strings.TrimSpace(in.Company),
		Status:           model.ContactNew,
	}
	if contact.PortfolioOwnerID == "" || contact.Name == "" || contact.Email == "" || contact.Subject == "" || contact.Message == "" {
		return nil, fmt.Errorf("%w: portfolioOwner, name, email, subject, and message are required", ErrInvalidInput)
	}
	if !strings.Contains(contact.Email, "@") {
		return nil, fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, contact.PortfolioOwnerID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: unknown portfolioOwner", ErrInvalidInput)
		}
		return nil, err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.logger.Info("contact message received", "contact_id", contact.ID, "recipient_id", contact.PortfolioOwnerID)
	return contact, nil
}

// Inbox lists the caller's received messages, optionally by status.
func (s *ContactService) Inbox(ctx context.Context, caller *identity.Identity, status model.ContactStatus) ([]model.Contact, error) {
	recipientID, err := requireCaller(caller)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown contact status %q", ErrInvalidInput, status)
	}
	return s.contacts.Find(ctx, store.ContactFilter{RecipientID: recipientID, Status: status})
}

// Get returns one of the caller's messages and marks it read.
func (s *ContactService) Get(ctx context.Context, caller *identity.Identity, id string) (*model.Contact, error) {
	contact, err := loadForRead(ctx, authz.KindContact, caller, id, s.contacts.FindByID)
	if err != nil {
		return nil, err
	}
	if contact.Status == model.ContactNew {
		contact.Status = model.ContactRead
		if err := s.contacts.Update(ctx, contact); err != nil {
			return nil, err
		}
	}
	return contact, nil
}

// Update changes status or records a reply on one of the caller's messages.
func (s *ContactService) Update(ctx context.Context, caller *identity.Identity, id string, patch ContactPatch) (*model.Contact, error) {
	contact, err := loadForMutation(ctx, authz.KindContact, "update", caller, id, s.contacts.FindByID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown contact status %q", ErrInvalidInput, *patch.Status)
		}
		contact.Status = *patch.Status
	}
	if patch.ReplyMessage != nil && strings.TrimSpace(*patch.ReplyMessage) != "" {
		contact.ReplyMessage = strings.TrimSpace(*patch.ReplyMessage)
		contact.Replied = true
		if patch.Status == nil {
			contact.Status = model.ContactReplied
		}
	} else if patch.Replied != nil {
		contact.Replied = *patch.Replied
	}
	if contact.Replied && (patch.Replied != nil || patch.ReplyMessage != nil) {
		now := s.now().UTC()
		contact.ReplyDate = &now
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	logMutation(ctx, caller, authz.KindContact, contact.ID, "update")
	return contact, nil
}

// Delete removes one of the caller's messages.
func (s *ContactService) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	contact, err := loadForMutation(ctx, authz.KindContact, "delete", caller, id, s.contacts.FindByID)
	if err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, contact); err != nil {
		return err
	}
	logMutation(ctx, caller, authz.KindContact, contact.ID, "delete")
	return nil
}
