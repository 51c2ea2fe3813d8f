package memory

import (
	"context"
	"sort"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// ContactsStore implements store.ContactsStore in memory
type ContactsStore struct {
	s *Store
}

var _ store.ContactsStore = (*ContactsStore)(nil)

func (c *ContactsStore) Find(_ context.Context, filter store.ContactFilter) ([]model.Contact, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	contacts := make([]model.Contact, 0)
	for _, contact := range c.s.contacts {
		if filter.Matches(&contact) {
			contacts = append(contacts, contact)
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (c *ContactsStore) FindByID(_ context.Context, id string) (*model.Contact, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	contact, ok := c.s.contacts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &contact, nil
}

func (c *ContactsStore) Create(_ context.Context, contact *model.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.stamp(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	c.s.contacts[contact.ID] = *contact
	return nil
}

func (c *ContactsStore) Update(_ context.Context, contact *model.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	existing, ok := c.s.contacts[contact.ID]
	if !ok || existing.PortfolioOwnerID != contact.PortfolioOwnerID {
		return store.ErrNotFound
	}
	contact.CreatedAt = existing.CreatedAt
	contact.UpdatedAt = c.s.now().UTC()
	c.s.contacts[contact.ID] = *contact
	return nil
}

func (c *ContactsStore) Delete(_ context.Context, contact *model.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	existing, ok := c.s.contacts[contact.ID]
	if !ok || existing.PortfolioOwnerID != contact.PortfolioOwnerID {
		return store.ErrNotFound
	}
	delete(c.s.contacts, contact.ID)
	return nil
}
