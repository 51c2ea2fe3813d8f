package memory

import (
	"context"
	"sort"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// ProjectsStore implements store.ProjectsStore in memory
type ProjectsStore struct {
	s *Store
}

var _ store.ProjectsStore = (*ProjectsStore)(nil)

func (p *ProjectsStore) Find(_ context.Context, filter store.ProjectFilter) ([]model.Project, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	projects := make([]model.Project, 0)
	for _, project := range p.s.projects {
		if filter.Matches(&project) {
			projects = append(projects, p.populate(project))
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (p *ProjectsStore) FindByID(_ context.Context, id string) (*model.Project, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	project, ok := p.s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	populated := p.populate(project)
	return &populated, nil
}

func (p *ProjectsStore) Create(_ context.Context, project *model.Project) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.stamp(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	p.s.projects[project.ID] = stripProject(*project)
	project.Author = p.s.author(project.AuthorID)
	return nil
}

func (p *ProjectsStore) Update(_ context.Context, project *model.Project) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.projects[project.ID]
	if !ok || existing.AuthorID != project.AuthorID {
		return store.ErrNotFound
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = p.s.now().UTC()
	p.s.projects[project.ID] = stripProject(*project)
	return nil
}

func (p *ProjectsStore) Delete(_ context.Context, project *model.Project) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.projects[project.ID]
	if !ok || existing.AuthorID != project.AuthorID {
		return store.ErrNotFound
	}
	delete(p.s.projects, project.ID)
	return nil
}

// populate must be called with the lock held.
func (p *ProjectsStore) populate(project model.Project) model.Project {
	project.Images = cloneStrings(project.Images)
	project.Technologies = cloneStrings(project.Technologies)
	project.Author = p.s.author(project.AuthorID)
	return project
}

func stripProject(project model.Project) model.Project {
	project.Images = cloneStrings(project.Images)
	project.Technologies = cloneStrings(project.Technologies)
	project.Author = nil
	return project
}
