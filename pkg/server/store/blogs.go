package store

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

// BlogFilter narrows a blog listing. Zero fields do not filter.
type BlogFilter struct {
	Category      string
	Tag           string
	Featured      *bool
	AuthorID      string
	PublishedOnly bool
}

// Matches reports whether b passes the filter.
func (f BlogFilter) Matches(b *model.Blog) bool {
	if f.PublishedOnly && !b.Published {
		return false
	}
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Tag != "" && !b.HasTag(f.Tag) {
		return false
	}
	if f.Featured != nil && b.Featured != *f.Featured {
		return false
	}
	if f.AuthorID != "" && b.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// BlogsStore abstracts blog and comment storage
type BlogsStore interface {
	// Find lists blogs matching filter, newest first, with authors populated.
	Find(ctx context.Context, filter BlogFilter) ([]model.Blog, error)

	// FindByID returns a blog with author and comments populated, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Blog, error)

	// FindBySlug returns a blog with author and comments populated, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)

	// SlugExists reports whether slug is taken.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Create persists a new blog, assigning its ID when empty.
	// Returns ErrDuplicateSlug if the slug is taken.
	Create(ctx context.Context, blog *model.Blog) error

	// Update writes blog's fields where id and author_id still match.
	Update(ctx context.Context, blog *model.Blog) error

	// Delete removes blog and its comments where id and author_id still match.
	Delete(ctx context.Context, blog *model.Blog) error

	// IncrementViews adds one to the view counter.
	IncrementViews(ctx context.Context, id string) error

	// AddComment appends a comment to a blog, assigning its ID when empty.
	AddComment(ctx context.Context, comment *model.Comment) error
}
