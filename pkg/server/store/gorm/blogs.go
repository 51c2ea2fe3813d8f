package gorm

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// Ensure BlogsStore implements store.BlogsStore
var _ store.BlogsStore = (*BlogsStore)(nil)

// BlogsStore implements store.BlogsStore using GORM
type BlogsStore struct {
	base
}

// NewBlogsStore creates a new BlogsStore
func NewBlogsStore(db *gorm.DB, logger *slog.Logger) *BlogsStore {
	return &BlogsStore{newBase(db, logger, "blogs")}
}

// Find lists blogs matching filter
func (s *BlogsStore) Find(ctx context.Context, filter store.BlogFilter) ([]model.Blog, error) {
	tx := s.db.WithContext(ctx).Preload("Author", withAuthor)
	if filter.PublishedOnly {
		tx = tx.Where("published = ?", true)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		tx = tx.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Featured != nil {
		tx = tx.Where("featured = ?", *filter.Featured)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}

	blogs := make([]model.Blog, 0)
	if err := tx.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, s.logError("blogs_find_failed", err)
	}
	for i := range blogs {
		blogs[i].Comments = []model.Comment{}
	}
	return blogs, nil
}

// FindByID returns a blog with author and comments
func (s *BlogsStore) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	return s.first(ctx, "id = ?", id)
}

// FindBySlug returns a blog with author and comments
func (s *BlogsStore) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return s.first(ctx, "slug = ?", slug)
}

func (s *BlogsStore) first(ctx context.Context, query string, arg string) (*model.Blog, error) {
	var blog model.Blog
	err := s.db.WithContext(ctx).
		Preload("Author", withAuthor).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(query, arg).
		First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, s.logError("blogs_find_failed", err, "query", query)
	}
	if blog.Comments == nil {
		blog.Comments = []model.Comment{}
	}
	return &blog, nil
}

// SlugExists reports whether slug is taken
func (s *BlogsStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Blog{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, s.logError("blogs_slug_lookup_failed", err, "slug", slug)
	}
	return count > 0, nil
}

// Create persists a new blog
func (s *BlogsStore) Create(ctx context.Context, blog *model.Blog) error {
	if blog.ID == "" {
		blog.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(blog).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateSlug
		}
		return s.logError("blogs_create_failed", err, "blog_id", blog.ID)
	}
	return nil
}

// Update writes blog's fields where the owner still matches
func (s *BlogsStore) Update(ctx context.Context, blog *model.Blog) error {
	result := s.db.WithContext(ctx).
		Model(blog).
		Where("author_id = ?", blog.AuthorID).
		Select("*").
		Omit("id", "author_id", "created_at", "views", clause.Associations).
		Updates(blog)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return store.ErrDuplicateSlug
		}
		return s.logError("blogs_update_failed", result.Error, "blog_id", blog.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes blog where the owner still matches; comments cascade.
func (s *BlogsStore) Delete(ctx context.Context, blog *model.Blog) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", blog.ID, blog.AuthorID).
		Delete(&model.Blog{})
	if result.Error != nil {
		return s.logError("blogs_delete_failed", result.Error, "blog_id", blog.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IncrementViews adds one to the view counter
func (s *BlogsStore) IncrementViews(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return s.logError("blogs_increment_views_failed", result.Error, "blog_id", id)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddComment appends a comment to a blog
func (s *BlogsStore) AddComment(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrNotFound
		}
		return s.logError("blogs_add_comment_failed", err, "blog_id", comment.BlogID)
	}
	return nil
}
