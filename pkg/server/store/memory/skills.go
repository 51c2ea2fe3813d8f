package memory

import (
	"context"
	"sort"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// SkillsStore implements store.SkillsStore in memory
type SkillsStore struct {
	s *Store
}

var _ store.SkillsStore = (*SkillsStore)(nil)

func (k *SkillsStore) Find(_ context.Context, filter store.SkillFilter) ([]model.Skill, error) {
	k.s.mu.RLock()
	defer k.s.mu.RUnlock()

	skills := make([]model.Skill, 0)
	for _, skill := range k.s.skills {
		if filter.Matches(&skill) {
			skill.Author = k.s.author(skill.AuthorID)
			skills = append(skills, skill)
		}
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Order != skills[j].Order {
			return skills[i].Order < skills[j].Order
		}
		return skills[i].Name < skills[j].Name
	})
	return skills, nil
}

func (k *SkillsStore) FindByID(_ context.Context, id string) (*model.Skill, error) {
	k.s.mu.RLock()
	defer k.s.mu.RUnlock()

	skill, ok := k.s.skills[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	skill.Author = k.s.author(skill.AuthorID)
	return &skill, nil
}

func (k *SkillsStore) Create(_ context.Context, skill *model.Skill) error {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()

	k.s.stamp(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
	stored := *skill
	stored.Author = nil
	k.s.skills[skill.ID] = stored
	skill.Author = k.s.author(skill.AuthorID)
	return nil
}

func (k *SkillsStore) Update(_ context.Context, skill *model.Skill) error {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()

	existing, ok := k.s.skills[skill.ID]
	if !ok || existing.AuthorID != skill.AuthorID {
		return store.ErrNotFound
	}
	skill.CreatedAt = existing.CreatedAt
	skill.UpdatedAt = k.s.now().UTC()
	stored := *skill
	stored.Author = nil
	k.s.skills[skill.ID] = stored
	return nil
}

func (k *SkillsStore) Delete(_ context.Context, skill *model.Skill) error {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()

	existing, ok := k.s.skills[skill.ID]
	if !ok || existing.AuthorID != skill.AuthorID {
		return store.ErrNotFound
	}
	delete(k.s.skills, skill.ID)
	return nil
}
