package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// ProjectInput is the create and update payload for a project. Nil fields are not supplied.
type ProjectInput struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	LongDescription *string                `json:"longDescription"`
	Image           *string                `json:"image"`
	Images          *[]string              `json:"images"`
	Technologies    *[]string              `json:"technologies"`
	Category        *model.ProjectCategory `json:"category"`
	Status          *model.ProjectStatus   `json:"status"`
	Featured        *bool                  `json:"featured"`
	Links           *model.ProjectLinks    `json:"links"`
	StartDate       *time.Time             `json:"startDate"`
	EndDate         *time.Time             `json:"endDate"`
	Client          *string                `json:"client"`
	Role            *string                `json:"role"`
}

// ProjectService manages projects under the owner-or-admin policy.
type ProjectService struct {
	projects store.ProjectsStore
	logger   *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects store.ProjectsStore, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{projects: projects, logger: logger}
}

// List returns projects matching filter, newest first.
func (s *ProjectService) List(ctx context.Context, filter store.ProjectFilter) ([]model.Project, error) {
	return s.projects.Find(ctx, filter)
}

// Get returns a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Create stores a new project authored by the caller.
func (s *ProjectService) Create(ctx context.Context, caller *identity.Identity, in ProjectInput) (*model.Project, error) {
	ownerID, err := requireCaller(caller)
	if err != nil {
		return nil, err
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" || in.Description == nil || strings.TrimSpace(*in.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}

	project := &model.Project{
		Images:       []string{},
		Technologies: []string{},
		Category:     model.ProjectOther,
		Status:       model.ProjectCompleted,
	}
	if err := in.apply(project); err != nil {
		return nil, err
	}

	project.AuthorID = ownerID
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "project_id", project.ID, "author_id", ownerID)
	logMutation(ctx, caller, authz.KindProject, project.ID, "create")
	return s.projects.FindByID(ctx, project.ID)
}

// Update applies in to a project the caller owns, or any project for an admin.
func (s *ProjectService) Update(ctx context.Context, caller *identity.Identity, id string, in ProjectInput) (*model.Project, error) {
	project, err := loadForMutation(ctx, authz.KindProject, "update", caller, id, s.projects.FindByID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
	}
	if err := in.apply(project); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	logMutation(ctx, caller, authz.KindProject, project.ID, "update")
	return s.projects.FindByID(ctx, project.ID)
}

// Delete removes a project the caller owns, or any project for an admin.
func (s *ProjectService) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	project, err := loadForMutation(ctx, authz.KindProject, "delete", caller, id, s.projects.FindByID)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, project); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", project.ID, "deleted_by", caller.ID)
	logMutation(ctx, caller, authz.KindProject, project.ID, "delete")
	return nil
}

func (in ProjectInput) apply(p *model.Project) error {
	if in.Category != nil {
		if !in.Category.Valid() {
			return fmt.Errorf("%w: unknown project category %q", ErrInvalidInput, *in.Category)
		}
		p.Category = *in.Category
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, *in.Status)
		}
		p.Status = *in.Status
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.LongDescription != nil {
		p.LongDescription = *in.LongDescription
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Images != nil {
		p.Images = trimAll(*in.Images)
	}
	if in.Technologies != nil {
		p.Technologies = trimAll(*in.Technologies)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Links != nil {
		p.Links = *in.Links
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if in.Client != nil {
		p.Client = *in.Client
	}
	if in.Role != nil {
		p.Role = *in.Role
	}
	return nil
}
