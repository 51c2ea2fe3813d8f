package store

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// ProjectFilter narrows a project listing. Zero fields do not filter.
type ProjectFilter struct {
	Status   model.ProjectStatus
	Category model.ProjectCategory
	Featured *bool
	AuthorID string
}

// Matches reports whether p passes the filter.
func (f ProjectFilter) Matches(p *model.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.AuthorID != "" && p.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// ProjectsStore abstracts project storage
type ProjectsStore interface {
	// Find lists projects matching filter, newest first, with authors populated.
	Find(ctx context.Context, filter ProjectFilter) ([]model.Project, error)

	// FindByID returns a project with its author populated, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// Create persists a new project, assigning its ID when empty.
	Create(ctx context.Context, project *model.Project) error

	// Update writes project's fields where id and author_id still match.
	Update(ctx context.Context, project *model.Project) error

	// Delete removes project where id and author_id still match.
	Delete(ctx context.Context, project *model.Project) error
}
