package store

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// UsersStore abstracts credential and profile storage
type UsersStore interface {
	// FindByID returns the user with id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns the user registered with a normalized email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create persists a new user, assigning its ID when empty.
	// Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *model.User) error

	// Update replaces the stored user with the same ID.
	// Returns ErrDuplicateEmail if the new email is taken, ErrNotFound if the user is gone.
	Update(ctx context.Context, user *model.User) error
}
