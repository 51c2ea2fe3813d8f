package store

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

func TestBlogFilter_Matches(t *testing.T) {
	yes := true
	blog := &model.Blog{
		Category:  "go",
		Tags:      pq.StringArray{"http", "auth"},
		Published: true,
		AuthorID:  "alice",
	}

	tests := []struct {
		name     string
		filter   BlogFilter
		expected bool
	}{
		{name: "empty filter", filter: BlogFilter{}, expected: true},
		{name: "category match", filter: BlogFilter{Category: "go"}, expected: true},
		{name: "category mismatch", filter: BlogFilter{Category: "rust"}, expected: false},
		{name: "tag match", filter: BlogFilter{Tag: "auth"}, expected: true},
		{name: "tag mismatch", filter: BlogFilter{Tag: "grpc"}, expected: false},
		{name: "featured mismatch", filter: BlogFilter{Featured: &yes}, expected: false},
		{name: "author match", filter: BlogFilter{AuthorID: "alice"}, expected: true},
		{name: "author mismatch", filter: BlogFilter{AuthorID: "bob"}, expected: false},
		{name: "published only", filter: BlogFilter{PublishedOnly: true}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(blog))
		})
	}

	draft := &model.Blog{AuthorID: "alice"}
	assert.False(t, BlogFilter{PublishedOnly: true}.Matches(draft))
}

func TestProjectFilter_Matches(t *testing.T) {
	no := false
	project := &model.Project{Status: model.ProjectCompleted, Category: model.ProjectWeb, AuthorID: "alice"}

	assert.True(t, ProjectFilter{}.Matches(project))
	assert.True(t, ProjectFilter{Status: model.ProjectCompleted, Category: model.ProjectWeb}.Matches(project))
	assert.True(t, ProjectFilter{Featured: &no}.Matches(project))
	assert.False(t, ProjectFilter{Status: model.ProjectPlanned}.Matches(project))
	assert.False(t, ProjectFilter{AuthorID: "bob"}.Matches(project))
}

func TestSkillFilter_Matches(t *testing.T) {
	skill := &model.Skill{Category: model.SkillBackend, AuthorID: "alice"}

	assert.True(t, SkillFilter{}.Matches(skill))
	assert.True(t, SkillFilter{Category: model.SkillBackend, AuthorID: "alice"}.Matches(skill))
	assert.False(t, SkillFilter{Category: model.SkillFrontend}.Matches(skill))
}

func TestContactFilter_Matches(t *testing.T) {
	contact := &model.Contact{PortfolioOwnerID: "alice", Status: model.ContactNew}

	assert.True(t, ContactFilter{RecipientID: "alice"}.Matches(contact))
	assert.True(t, ContactFilter{RecipientID: "alice", Status: model.ContactNew}.Matches(contact))
	assert.False(t, ContactFilter{RecipientID: "bob"}.Matches(contact))
	assert.False(t, ContactFilter{RecipientID: "alice", Status: model.ContactArchived}.Matches(contact))
}
