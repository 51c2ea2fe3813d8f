package model

import (
	"time"

	"github.com/lib/pq"
)

// ProjectCategory classifies a project.
type ProjectCategory string

const (
	ProjectWeb     ProjectCategory = "web"
	ProjectMobile  ProjectCategory = "mobile"
	ProjectDesktop ProjectCategory = "desktop"
	ProjectOther   ProjectCategory = "other"
)

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectPlanned    ProjectStatus = "planned"
)

func (c ProjectCategory) Valid() bool {
	switch c {
	case ProjectWeb, ProjectMobile, ProjectDesktop, ProjectOther:
		return true
	}
	return false
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectCompleted, ProjectInProgress, ProjectPlanned:
		return true
	}
	return false
}

// ProjectLinks are the outward links of a project.
type ProjectLinks struct {
	Live   string `gorm:"column:live" json:"live,omitempty"`
	Github string `gorm:"column:github" json:"github,omitempty"`
	Demo   string `gorm:"column:demo" json:"demo,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID              string          `gorm:"column:id;primaryKey" json:"id"`
	Title           string          `gorm:"column:title;not null" json:"title"`
	Description     string          `gorm:"column:description;not null" json:"description"`
	LongDescription string          `gorm:"column:long_description" json:"longDescription,omitempty"`
	Image           string          `gorm:"column:image" json:"image,omitempty"`
	Images          pq.StringArray  `gorm:"column:images;type:text[]" json:"images"`
	Technologies    pq.StringArray  `gorm:"column:technologies;type:text[]" json:"technologies"`
	Category        ProjectCategory `gorm:"column:category;not null" json:"category"`
	Status          ProjectStatus   `gorm:"column:status;not null" json:"status"`
	Featured        bool            `gorm:"column:featured;not null" json:"featured"`
	Links           ProjectLinks    `gorm:"embedded;embeddedPrefix:links_" json:"links"`
	StartDate       *time.Time      `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate         *time.Time      `gorm:"column:end_date" json:"endDate,omitempty"`
	Client          string          `gorm:"column:client" json:"client,omitempty"`
	Role            string          `gorm:"column:role" json:"role,omitempty"`
	AuthorID        string          `gorm:"column:author_id;not null;index" json:"authorId"`
	Author          *Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// OwnerRef returns the author id.
func (p *Project) OwnerRef() string {
	return p.AuthorID
}
