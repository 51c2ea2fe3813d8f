package store

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// ContactFilter narrows an inbox listing.
type ContactFilter struct {
	RecipientID string
	Status      model.ContactStatus
}

// Matches reports whether c passes the filter.
func (f ContactFilter) Matches(c *model.Contact) bool {
	if f.RecipientID != "" && c.PortfolioOwnerID != f.RecipientID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return true
}

// ContactsStore abstracts contact message storage
type ContactsStore interface {
	// Find lists messages matching filter, newest first.
	Find(ctx context.Context, filter ContactFilter) ([]model.Contact, error)

	// FindByID returns a message, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Contact, error)

	// Create persists a new message, assigning its ID when empty.
	Create(ctx context.Context, contact *model.Contact) error

	// Update writes contact's fields where id and portfolio_owner_id still match.
	Update(ctx context.Context, contact *model.Contact) error

	// Delete removes contact where id and portfolio_owner_id still match.
	Delete(ctx context.Context, contact *model.Contact) error
}
