package model

import (
	"time"

	"github.com/lib/pq"
)

// Blog is an article authored by a user. Unpublished blogs are drafts.
type Blog struct {
	ID         string         `gorm:"column:id;primaryKey" json:"id"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	Slug       string         `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Excerpt    string         `gorm:"column:excerpt" json:"excerpt,omitempty"`
	Content    string         `gorm:"column:content;not null" json:"content"`
	CoverImage string         `gorm:"column:cover_image" json:"coverImage,omitempty"`
	Tags       pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	Category   string         `gorm:"column:category" json:"category,omitempty"`
	Published  bool           `gorm:"column:published;not null" json:"published"`
	Featured   bool           `gorm:"column:featured;not null" json:"featured"`
	Views      int            `gorm:"column:views;not null" json:"views"`
	ReadTime   int            `gorm:"column:read_time" json:"readTime"`
	AuthorID   string         `gorm:"column:author_id;not null;index" json:"authorId"`
	Author     *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments   []Comment      `gorm:"foreignKey:BlogID" json:"comments"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string {
	return "blogs"
}

// OwnerRef returns the author id.
func (b *Blog) OwnerRef() string {
	return b.AuthorID
}

// HasTag reports whether the blog carries tag.
func (b *Blog) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Comment is a public comment on a blog. UserID is set when the commenter was signed in.
type Comment struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	BlogID    string    `gorm:"column:blog_id;not null;index" json:"-"`
	UserID    *string   `gorm:"column:user_id" json:"userId,omitempty"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Comment) TableName() string {
	return "blog_comments"
}
