package memory

import (
	"context"
	"strings"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// UsersStore implements store.UsersStore in memory
type UsersStore struct {
	s *Store
}

var _ store.UsersStore = (*UsersStore)(nil)

func (u *UsersStore) FindByID(_ context.Context, id string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (u *UsersStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	if user, ok := u.byEmail(email); ok {
		return &user, nil
	}
	return nil, store.ErrNotFound
}

func (u *UsersStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, taken := u.byEmail(user.Email); taken {
		return store.ErrDuplicateEmail
	}
	u.s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u *UsersStore) Update(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	existing, ok := u.s.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	if other, taken := u.byEmail(user.Email); taken && other.ID != user.ID {
		return store.ErrDuplicateEmail
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = u.s.now().UTC()
	u.s.users[user.ID] = *user
	return nil
}

// byEmail must be called with the lock held.
func (u *UsersStore) byEmail(email string) (model.User, bool) {
	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return model.User{}, false
}
