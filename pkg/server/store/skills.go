package store

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// SkillFilter narrows a skill listing. Zero fields do not filter.
type SkillFilter struct {
	Category model.SkillCategory
	AuthorID string
}

// Matches reports whether s passes the filter.
func (f SkillFilter) Matches(s *model.Skill) bool {
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.AuthorID != "" && s.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// SkillsStore abstracts skill storage
type SkillsStore interface {
	// Find lists skills matching filter ordered by sort order then name.
	Find(ctx context.Context, filter SkillFilter) ([]model.Skill, error)

	// FindByID returns a skill with its author populated, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Skill, error)

	// Create persists a new skill, assigning its ID when empty.
	Create(ctx context.Context, skill *model.Skill) error

	// Update writes skill's fields where id and author_id still match.
	Update(ctx context.Context, skill *model.Skill) error

	// Delete removes skill where id and author_id still match.
	Delete(ctx context.Context, skill *model.Skill) error
}
