package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// SkillInput is the create and update payload for a skill. Nil fields are not supplied.
type SkillInput struct {
	Name              *string              `json:"name"`
	Category          *model.SkillCategory `json:"category"`
	Proficiency       *int                 `json:"proficiency"`
	Icon              *string              `json:"icon"`
	Color             *string              `json:"color"`
	YearsOfExperience *float64             `json:"yearsOfExperience"`
	Description       *string              `json:"description"`
	Order             *int                 `json:"order"`
}

// SkillService manages skills under the owner-or-admin policy.
type SkillService struct {
	skills store.SkillsStore
	logger *slog.Logger
}

// NewSkillService creates a new SkillService
func NewSkillService(skills store.SkillsStore, logger *slog.Logger) *SkillService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillService{skills: skills, logger: logger}
}

// List returns skills matching filter ordered by sort order then name.
func (s *SkillService) List(ctx context.Context, filter store.SkillFilter) ([]model.Skill, error) {
	return s.skills.Find(ctx, filter)
}

// Get returns a skill by id.
func (s *SkillService) Get(ctx context.Context, id string) (*model.Skill, error) {
	return s.skills.FindByID(ctx, id)
}

// Create stores a new skill owned by the caller.
func (s *SkillService) Create(ctx context.Context, caller *identity.Identity, in SkillInput) (*model.Skill, error) {
	ownerID, err := requireCaller(caller)
	if err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Category == nil || in.Proficiency == nil {
		return nil, fmt.Errorf("%w: name, category, and proficiency are required", ErrInvalidInput)
	}

	skill := &model.Skill{Color: model.DefaultSkillColor}
	if err := in.apply(skill); err != nil {
		return nil, err
	}

	skill.AuthorID = ownerID
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}

	s.logger.Info("skill created", "skill_id", skill.ID, "author_id", ownerID)
	logMutation(ctx, caller, authz.KindSkill, skill.ID, "create")
	return s.skills.FindByID(ctx, skill.ID)
}

// Update applies in to a skill the caller owns, or any skill for an admin.
func (s *SkillService) Update(ctx context.Context, caller *identity.Identity, id string, in SkillInput) (*model.Skill, error) {
	skill, err := loadForMutation(ctx, authz.KindSkill, "update", caller, id, s.skills.FindByID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if err := in.apply(skill); err != nil {
		return nil, err
	}

	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}

	logMutation(ctx, caller, authz.KindSkill, skill.ID, "update")
	return s.skills.FindByID(ctx, skill.ID)
}

// Delete removes a skill the caller owns, or any skill for an admin.
func (s *SkillService) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	skill, err := loadForMutation(ctx, authz.KindSkill, "delete", caller, id, s.skills.FindByID)
	if err != nil {
		return err
	}
	if err := s.skills.Delete(ctx, skill); err != nil {
		return err
	}

	s.logger.Info("skill deleted", "skill_id", skill.ID, "deleted_by", caller.ID)
	logMutation(ctx, caller, authz.KindSkill, skill.ID, "delete")
	return nil
}

func (in SkillInput) apply(k *model.Skill) error {
	if in.Category != nil {
		if !in.Category.Valid() {
			return fmt.Errorf("%w: unknown skill category %q", ErrInvalidInput, *in.Category)
		}
		k.Category = *in.Category
	}
	if in.Proficiency != nil {
		if *in.Proficiency < 0 || *in.Proficiency > 100 {
			return fmt.Errorf("%w: proficiency must be between 0 and 100", ErrInvalidInput)
		}
		k.Proficiency = *in.Proficiency
	}
	if in.YearsOfExperience != nil {
		if *in.YearsOfExperience < 0 {
			return fmt.Errorf("%w: yearsOfExperience must not be negative", ErrInvalidInput)
		}
		k.YearsOfExperience = *in.YearsOfExperience
	}
	if in.Name != nil {
		k.Name = strings.TrimSpace(*in.Name)
	}
	if in.Icon != nil {
		k.Icon = *in.Icon
	}
	if in.Color != nil && *in.Color != "" {
		k.Color = *in.Color
	}
	if in.Description != nil {
		k.Description = *in.Description
	}
	if in.Order != nil {
		k.Order = *in.Order
	}
	return nil
}
