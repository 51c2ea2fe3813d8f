package model

import "time"

// SkillCategory groups skills on a portfolio page.
type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillDatabase SkillCategory = "database"
	SkillDevops   SkillCategory = "devops"
	SkillTools    SkillCategory = "tools"
	SkillOther    SkillCategory = "other"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillFrontend, SkillBackend, SkillDatabase, SkillDevops, SkillTools, SkillOther:
		return true
	}
	return false
}

// DefaultSkillColor is used when a skill is created without a color.
const DefaultSkillColor = "#3b82f6"

// Skill is a single skill entry.
type Skill struct {
	ID                string        `gorm:"column:id;primaryKey" json:"id"`
	Name              string        `gorm:"column:name;not null" json:"name"`
	Category          SkillCategory `gorm:"column:category;not null" json:"category"`
	Proficiency       int           `gorm:"column:proficiency;not null" json:"proficiency"`
	Icon              string        `gorm:"column:icon" json:"icon,omitempty"`
	Color             string        `gorm:"column:color" json:"color"`
	YearsOfExperience float64       `gorm:"column:years_of_experience" json:"yearsOfExperience,omitempty"`
	Description       string        `gorm:"column:description" json:"description,omitempty"`
	Order             int           `gorm:"column:sort_order;not null" json:"order"`
	AuthorID          string        `gorm:"column:author_id;not null;index" json:"authorId"`
	Author            *Author       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Skill) TableName() string {
	return "skills"
}

// OwnerRef returns the author id.
func (s *Skill) OwnerRef() string {
	return s.AuthorID
}
