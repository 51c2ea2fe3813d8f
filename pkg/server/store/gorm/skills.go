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

// Ensure SkillsStore implements store.SkillsStore
var _ store.SkillsStore = (*SkillsStore)(nil)

// SkillsStore implements store.SkillsStore using GORM
type SkillsStore struct {
	base
}

// NewSkillsStore creates a new SkillsStore
func NewSkillsStore(db *gorm.DB, logger *slog.Logger) *SkillsStore {
	return &SkillsStore{newBase(db, logger, "skills")}
}

// Find lists skills matching filter by sort order then name
func (s *SkillsStore) Find(ctx context.Context, filter store.SkillFilter) ([]model.Skill, error) {
	tx := s.db.WithContext(ctx).Preload("Author", withAuthor)
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}

	skills := make([]model.Skill, 0)
	if err := tx.Order("sort_order ASC").Order("name ASC").Find(&skills).Error; err != nil {
		return nil, s.logError("skills_find_failed", err)
	}
	return skills, nil
}

// FindByID returns a skill with its author
func (s *SkillsStore) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	err := s.db.WithContext(ctx).Preload("Author", withAuthor).Where("id = ?", id).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, s.logError("skills_find_failed", err, "skill_id", id)
	}
	return &skill, nil
}

// Create persists a new skill
func (s *SkillsStore) Create(ctx context.Context, skill *model.Skill) error {
	if skill.ID == "" {
		skill.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(skill).Error; err != nil {
		return s.logError("skills_create_failed", err, "skill_id", skill.ID)
	}
	return nil
}

// Update writes skill's fields where the owner still matches
func (s *SkillsStore) Update(ctx context.Context, skill *model.Skill) error {
	result := s.db.WithContext(ctx).
		Model(skill).
		Where("author_id = ?", skill.AuthorID).
		Select("*").
		Omit("id", "author_id", "created_at", clause.Associations).
		Updates(skill)
	if result.Error != nil {
		return s.logError("skills_update_failed", result.Error, "skill_id", skill.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes skill where the owner still matches
func (s *SkillsStore) Delete(ctx context.Context, skill *model.Skill) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", skill.ID, skill.AuthorID).
		Delete(&model.Skill{})
	if result.Error != nil {
		return s.logError("skills_delete_failed", result.Error, "skill_id", skill.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
