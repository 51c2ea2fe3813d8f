package gorm

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	base
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB, logger *slog.Logger) *UsersStore {
	return &UsersStore{newBase(db, logger, "users")}
}

// FindByID returns the user with id
func (s *UsersStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

// FindByEmail returns the user registered with email
func (s *UsersStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UsersStore) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, s.logError("users_find_failed", err, "query", query)
	}
	return &user, nil
}

// Create persists a new user
func (s *UsersStore) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.NewID()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateEmail
		}
		return s.logError("users_create_failed", err, "user_id", user.ID)
	}
	return nil
}

// Update replaces the stored user
func (s *UsersStore) Update(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).
		Model(user).
		Select("*").
		Omit("id", "created_at").
		Updates(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return store.ErrDuplicateEmail
		}
		return s.logError("users_update_failed", result.Error, "user_id", user.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
