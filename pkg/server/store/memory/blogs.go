package memory

import (
	"context"
	"sort"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// BlogsStore implements store.BlogsStore in memory
type BlogsStore struct {
	s *Store
}

var _ store.BlogsStore = (*BlogsStore)(nil)

func (b *BlogsStore) Find(_ context.Context, filter store.BlogFilter) ([]model.Blog, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	blogs := make([]model.Blog, 0)
	for _, blog := range b.s.blogs {
		if !filter.Matches(&blog) {
			continue
		}
		blogs = append(blogs, b.populate(blog, false))
	}
	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
	return blogs, nil
}

func (b *BlogsStore) FindByID(_ context.Context, id string) (*model.Blog, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	blog, ok := b.s.blogs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	populated := b.populate(blog, true)
	return &populated, nil
}

func (b *BlogsStore) FindBySlug(_ context.Context, slug string) (*model.Blog, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	for _, blog := range b.s.blogs {
		if blog.Slug == slug {
			populated := b.populate(blog, true)
			return &populated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (b *BlogsStore) SlugExists(_ context.Context, slug string) (bool, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	return b.slugTaken(slug, ""), nil
}

func (b *BlogsStore) Create(_ context.Context, blog *model.Blog) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if b.slugTaken(blog.Slug, "") {
		return store.ErrDuplicateSlug
	}
	b.s.stamp(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	b.s.blogs[blog.ID] = stripBlog(*blog)
	blog.Author = b.s.author(blog.AuthorID)
	if blog.Comments == nil {
		blog.Comments = []model.Comment{}
	}
	return nil
}

func (b *BlogsStore) Update(_ context.Context, blog *model.Blog) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	existing, ok := b.s.blogs[blog.ID]
	if !ok || existing.AuthorID != blog.AuthorID {
		return store.ErrNotFound
	}
	if b.slugTaken(blog.Slug, blog.ID) {
		return store.ErrDuplicateSlug
	}
	blog.CreatedAt = existing.CreatedAt
	blog.Views = existing.Views
	blog.UpdatedAt = b.s.now().UTC()
	b.s.blogs[blog.ID] = stripBlog(*blog)
	return nil
}

func (b *BlogsStore) Delete(_ context.Context, blog *model.Blog) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	existing, ok := b.s.blogs[blog.ID]
	if !ok || existing.AuthorID != blog.AuthorID {
		return store.ErrNotFound
	}
	delete(b.s.blogs, blog.ID)
	delete(b.s.comments, blog.ID)
	return nil
}

func (b *BlogsStore) IncrementViews(_ context.Context, id string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	blog, ok := b.s.blogs[id]
	if !ok {
		return store.ErrNotFound
	}
	blog.Views++
	b.s.blogs[id] = blog
	return nil
}

func (b *BlogsStore) AddComment(_ context.Context, comment *model.Comment) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.blogs[comment.BlogID]; !ok {
		return store.ErrNotFound
	}
	if comment.ID == "" {
		comment.ID = model.NewID()
	}
	comment.CreatedAt = b.s.now().UTC()
	b.s.comments[comment.BlogID] = append(b.s.comments[comment.BlogID], *comment)
	return nil
}

// slugTaken must be called with the lock held.
func (b *BlogsStore) slugTaken(slug, exceptID string) bool {
	for id, blog := range b.s.blogs {
		if blog.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

// populate must be called with the lock held.
func (b *BlogsStore) populate(blog model.Blog, withComments bool) model.Blog {
	blog.Tags = cloneStrings(blog.Tags)
	blog.Author = b.s.author(blog.AuthorID)
	blog.Comments = []model.Comment{}
	if withComments {
		blog.Comments = append(blog.Comments, b.s.comments[blog.ID]...)
	}
	return blog
}

func stripBlog(blog model.Blog) model.Blog {
	blog.Tags = cloneStrings(blog.Tags)
	blog.Author = nil
	blog.Comments = nil
	return blog
}
