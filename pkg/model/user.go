package model

import "time"

// Role controls policy escalation.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Social holds a user's external profile links.
type Social struct {
	Github   string `gorm:"column:github" json:"github,omitempty"`
	Linkedin string `gorm:"column:linkedin" json:"linkedin,omitempty"`
	Twitter  string `gorm:"column:twitter" json:"twitter,omitempty"`
	Website  string `gorm:"column:website" json:"website,omitempty"`
}

// User is a registered principal.
type User struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"column:role;not null" json:"role"`
	Avatar       string    `gorm:"column:avatar" json:"avatar,omitempty"`
	Bio          string    `gorm:"column:bio" json:"bio,omitempty"`
	Title        string    `gorm:"column:title" json:"title,omitempty"`
	Social       Social    `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// OwnerRef returns the user's own id; a profile is owned by itself.
func (u *User) OwnerRef() string {
	return u.ID
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Author is the public projection of a user attached to content.
type Author struct {
	ID     string `gorm:"column:id;primaryKey" json:"id"`
	Name   string `gorm:"column:name" json:"name"`
	Email  string `gorm:"column:email" json:"email"`
	Avatar string `gorm:"column:avatar" json:"avatar,omitempty"`
	Bio    string `gorm:"column:bio" json:"bio,omitempty"`
}

func (Author) TableName() string {
	return "users"
}

// AuthorOf builds the display projection for u.
func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Bio: u.Bio}
}
