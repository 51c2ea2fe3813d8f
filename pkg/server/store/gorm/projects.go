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

// Ensure ProjectsStore implements store.ProjectsStore
var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	base
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB, logger *slog.Logger) *ProjectsStore {
	return &ProjectsStore{newBase(db, logger, "projects")}
}

// Find lists projects matching filter
func (s *ProjectsStore) Find(ctx context.Context, filter store.ProjectFilter) ([]model.Project, error) {
	tx := s.db.WithContext(ctx).Preload("Author", withAuthor)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		tx = tx.Where("featured = ?", *filter.Featured)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}

	projects := make([]model.Project, 0)
	if err := tx.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, s.logError("projects_find_failed", err)
	}
	return projects, nil
}

// FindByID returns a project with its author
func (s *ProjectsStore) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Author", withAuthor).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, s.logError("projects_find_failed", err, "project_id", id)
	}
	return &project, nil
}

// Create persists a new project
func (s *ProjectsStore) Create(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = model.NewID()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error; err != nil {
		return s.logError("projects_create_failed", err, "project_id", project.ID)
	}
	return nil
}

// Update writes project's fields where the owner still matches
func (s *ProjectsStore) Update(ctx context.Context, project *model.Project) error {
	result := s.db.WithContext(ctx).
		Model(project).
		Where("author_id = ?", project.AuthorID).
		Select("*").
		Omit("id", "author_id", "created_at", clause.Associations).
		Updates(project)
	if result.Error != nil {
		return s.logError("projects_update_failed", result.Error, "project_id", project.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes project where the owner still matches
func (s *ProjectsStore) Delete(ctx context.Context, project *model.Project) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", project.ID, project.AuthorID).
		Delete(&model.Project{})
	if result.Error != nil {
		return s.logError("projects_delete_failed", result.Error, "project_id", project.ID)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
