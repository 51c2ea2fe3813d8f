package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// BlogInput is the create and update payload for a blog. Nil fields are not
// supplied. It has no owner field; the author is always the caller.
type BlogInput struct {
	Title      *string   `json:"title"`
	Slug       *string   `json:"slug"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	Published  *bool     `json:"published"`
	Featured   *bool     `json:"featured"`
	ReadTime   *int      `json:"readTime"`
}

// CommentInput is a public comment payload.
type CommentInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// BlogService manages blogs under the strict-owner policy.
type BlogService struct {
	blogs  store.BlogsStore
	logger *slog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(blogs store.BlogsStore, logger *slog.Logger) *BlogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogService{blogs: blogs, logger: logger}
}

// List returns published blogs matching filter, newest first.
func (s *BlogService) List(ctx context.Context, filter store.BlogFilter) ([]model.Blog, error) {
	filter.PublishedOnly = true
	return s.blogs.Find(ctx, filter)
}

// ListMine returns every blog the caller authored, drafts included.
func (s *BlogService) ListMine(ctx context.Context, caller *identity.Identity) ([]model.Blog, error) {
	ownerID, err := requireCaller(caller)
	if err != nil {
		return nil, err
	}
	return s.blogs.Find(ctx, store.BlogFilter{AuthorID: ownerID})
}

// Get returns a blog by id. Drafts are visible to their author only.
func (s *BlogService) Get(ctx context.Context, viewer *identity.Identity, id string) (*model.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(blog, viewer) {
		return nil, store.ErrNotFound
	}
	return blog, nil
}

// GetBySlug returns a published blog and counts the view.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	if !blog.Published {
		return nil, store.ErrNotFound
	}
	if err := s.blogs.IncrementViews(ctx, blog.ID); err != nil {
		return nil, err
	}
	blog.Views++
	return blog, nil
}

// Create stores a new blog authored by the caller.
func (s *BlogService) Create(ctx context.Context, caller *identity.Identity, in BlogInput) (*model.Blog, error) {
	ownerID, err := requireCaller(caller)
	if err != nil {
		return nil, err
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" || in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	blog := &model.Blog{Tags: []string{}}
	in.apply(blog)

	base := Slugify(blog.Title)
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		base = Slugify(*in.Slug)
	}
	if blog.Slug, err = uniqueSlug(ctx, base, s.blogs.SlugExists); err != nil {
		return nil, err
	}

	blog.AuthorID = ownerID
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.Info("blog created", "blog_id", blog.ID, "author_id", ownerID)
	logMutation(ctx, caller, authz.KindBlog, blog.ID, "create")
	return s.blogs.FindByID(ctx, blog.ID)
}

// Update applies in to a blog the caller authored.
func (s *BlogService) Update(ctx context.Context, caller *identity.Identity, id string, in BlogInput) (*model.Blog, error) {
	blog, err := loadForMutation(ctx, authz.KindBlog, "update", caller, id, s.blogs.FindByID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	in.apply(blog)

	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug != blog.Slug {
			taken, err := slugTaken(ctx, slug, s.blogs.SlugExists)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, store.ErrDuplicateSlug
			}
			blog.Slug = slug
		}
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}

	logMutation(ctx, caller, authz.KindBlog, blog.ID, "update")
	return s.blogs.FindByID(ctx, blog.ID)
}

// Delete removes a blog the caller authored.
func (s *BlogService) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	blog, err := loadForMutation(ctx, authz.KindBlog, "delete", caller, id, s.blogs.FindByID)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, blog); err != nil {
		return err
	}

	s.logger.Info("blog deleted", "blog_id", blog.ID, "author_id", blog.AuthorID)
	logMutation(ctx, caller, authz.KindBlog, blog.ID, "delete")
	return nil
}

// AddComment appends a public comment. Signed-in commenters are linked by id.
func (s *BlogService) AddComment(ctx context.Context, viewer *identity.Identity, id string, in CommentInput) (*model.Blog, error) {
	blog, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		BlogID:  blog.ID,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Content: strings.TrimSpace(in.Content),
	}
	if viewer != nil {
		userID := viewer.ID
		comment.UserID = &userID
		if comment.Name == "" {
			comment.Name = viewer.Name
		}
		if comment.Email == "" {
			comment.Email = viewer.Email
		}
	}
	if comment.Content == "" || comment.Name == "" {
		return nil, fmt.Errorf("%w: name and content are required", ErrInvalidInput)
	}

	if err := s.blogs.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.blogs.FindByID(ctx, blog.ID)
}

func visible(blog *model.Blog, viewer *identity.Identity) bool {
	if blog.Published {
		return true
	}
	return authz.For(authz.KindBlog).Authorize(viewer, blog) == nil
}

func (in BlogInput) apply(blog *model.Blog) {
	if in.Title != nil {
		blog.Title = strings.TrimSpace(*in.Title)
	}
	if in.Excerpt != nil {
		blog.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		blog.Content = *in.Content
		blog.ReadTime = ReadTime(blog.Content)
	}
	if in.CoverImage != nil {
		blog.CoverImage = *in.CoverImage
	}
	if in.Tags != nil {
		blog.Tags = trimAll(*in.Tags)
	}
	if in.Category != nil {
		blog.Category = strings.TrimSpace(*in.Category)
	}
	if in.Published != nil {
		blog.Published = *in.Published
	}
	if in.Featured != nil {
		blog.Featured = *in.Featured
	}
	if in.ReadTime != nil && *in.ReadTime >= 0 {
		blog.ReadTime = *in.ReadTime
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// isNotFound reports whether err is the store's not-found error.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
