package gorm

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// Ensure ContactsStore implements store.ContactsStore
var _ store.ContactsStore = (*ContactsStore)(nil)

// ContactsStore implements store.ContactsStore using GORM
type ContactsStore struct {
	base
}

// NewContactsStore creates a new ContactsStore
func NewContactsStore(db *gorm.DB, logger *slog.Logger) *ContactsStore {
	return &ContactsStore{newBase(db, logger, "contacts")}
}

// Find lists messages matching filter, newest first
func (s *ContactsStore) Find(ctx context.Context, filter store.ContactFilter) ([]model.Contact, error) {
	tx := s.db.WithContext(ctx)
	if filter.RecipientID != "" {
		tx = tx.Where("portfolio_owner_id = ?", filter.RecipientID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}

	contacts := make([]model.Contact, 0)
	if err := tx.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, s.logError("contacts_find_failed", err)
	}
	return contacts, nil
}

// FindByID returns a message
func (s *ContactsStore) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	var contact model.Contact
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, s.logError("contacts_find_failed", err, "contact_id", id)
	}
	return &contact, nil
}

// Create persists a new message
func (s *ContactsStore) Create(ctx context.Context, contact *model.Contact) error {
	if contact.ID == "" {
		contact.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return s.logError("contacts_create_failed", err, "contact_id", contact.ID)
	}
	return nil
}

// Update writes contact's fields where the recipient still matches
func (s *ContactsStore) Update(ctx context.Context, contact *model.Contact) error {
	result := s.db.WithContext(ctx).
		Model(contact).
		Where("portfolio_owner_id = ?", contact.PortfolioOwnerID).
		Select("*").
		Omit("id", "portfolio_owner_id", "created_at").
		Updates(contact)
	if result.Error != nil {
		return s.logError("contacts_update_failed", result.Error, "contact_id", contact.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes contact where the recipient still matches
func (s *ContactsStore) Delete(ctx context.Context, contact *model.Contact) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND portfolio_owner_id = ?", contact.ID, contact.PortfolioOwnerID).
		Delete(&model.Contact{})
	if result.Error != nil {
		return s.logError("contacts_delete_failed", result.Error, "contact_id", contact.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
