// Package memory implements the store interfaces in process memory.
// It is intended for tests and local development (store: memory).
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// Store holds every collection behind one lock so populated reads see a
// consistent author table.
type Store struct {
	mu sync.RWMutex

	users    map[string]model.User
	blogs    map[string]model.Blog
	comments map[string][]model.Comment
	projects map[string]model.Project
	skills   map[string]model.Skill
	contacts map[string]model.Contact

	now func() time.Time
}

// NewStore builds an empty in-memory adapter.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]model.User),
		blogs:    make(map[string]model.Blog),
		comments: make(map[string][]model.Comment),
		projects: make(map[string]model.Project),
		skills:   make(map[string]model.Skill),
		contacts: make(map[string]model.Contact),
		now:      time.Now,
	}
}

// Users returns the UsersStore view.
func (s *Store) Users() *UsersStore { return &UsersStore{s} }

// Blogs returns the BlogsStore view.
func (s *Store) Blogs() *BlogsStore { return &BlogsStore{s} }

// Projects returns the ProjectsStore view.
func (s *Store) Projects() *ProjectsStore { return &ProjectsStore{s} }

// Skills returns the SkillsStore view.
func (s *Store) Skills() *SkillsStore { return &SkillsStore{s} }

// Contacts returns the ContactsStore view.
func (s *Store) Contacts() *ContactsStore { return &ContactsStore{s} }

// Health returns the HealthStore view.
func (s *Store) Health() *HealthStore { return &HealthStore{} }

// author must be called with the lock held.
func (s *Store) author(id string) *model.Author {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return model.AuthorOf(&u)
}

func (s *Store) stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = model.NewID()
	}
	now := s.now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

// HealthStore always reports healthy.
type HealthStore struct{}

var _ store.HealthStore = (*HealthStore)(nil)

// CheckConnectivity verifies backend connectivity
func (h *HealthStore) CheckConnectivity(ctx context.Context) error {
	return ctx.Err()
}
