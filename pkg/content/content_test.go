package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
	"github.com/doodlesbykumbi/folio/pkg/server/store/memory"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	m.Run()
}

type fixture struct {
	mem      *memory.Store
	blogs    *BlogService
	projects *ProjectService
	skills   *SkillService
	contacts *ContactService

	alice *identity.Identity
	bob   *identity.Identity
	admin *identity.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := memory.NewStore()

	register := func(name string, role model.Role) *identity.Identity {
		user := &model.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
		require.NoError(t, mem.Users().Create(ctx, user))
		return identity.FromUser(user)
	}

	return &fixture{
		mem:      mem,
		blogs:    NewBlogService(mem.Blogs(), nil),
		projects: NewProjectService(mem.Projects(), nil),
		skills:   NewSkillService(mem.Skills(), nil),
		contacts: NewContactService(mem.Contacts(), mem.Users(), nil),
		alice:    register("alice", model.RoleUser),
		bob:      register("bob", model.RoleUser),
		admin:    register("carol", model.RoleAdmin),
	}
}

func ptr[T any](v T) *T { return &v }

func TestBlogScenario_CreateDeleteAsOtherThenOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("T"), Content: ptr("C")})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, created.AuthorID)
	require.NotNil(t, created.Author)
	assert.Equal(t, "alice", created.Author.Name)

	err = f.blogs.Delete(ctx, f.bob, created.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	still, err := f.mem.Blogs().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", still.Title)

	require.NoError(t, f.blogs.Delete(ctx, f.alice, created.ID))

	_, err = f.mem.Blogs().FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = f.blogs.Delete(ctx, f.alice, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOwnershipInvariant_OwnerFromIdentityOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Owner-looking fields in a body are not part of any input type.
	body := []byte(`{"title":"Mine","content":"body","author":"` + f.bob.ID + `","authorId":"` + f.bob.ID + `","user":"` + f.bob.ID + `"}`)
	var in BlogInput
	require.NoError(t, json.Unmarshal(body, &in))

	blog, err := f.blogs.Create(ctx, f.alice, in)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, blog.AuthorID)

	var pin ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"P","description":"d","authorId":"`+f.bob.ID+`"}`), &pin))
	project, err := f.projects.Create(ctx, f.alice, pin)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, project.AuthorID)

	var sin SkillInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Go","category":"backend","proficiency":90,"author":"`+f.bob.ID+`"}`), &sin))
	skill, err := f.skills.Create(ctx, f.alice, sin)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, skill.AuthorID)

	// Updates never move ownership either.
	updated, err := f.blogs.Update(ctx, f.alice, blog.ID, in)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, updated.AuthorID)
}

func TestCreate_RequiresIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.blogs.Create(ctx, nil, BlogInput{Title: ptr("T"), Content: ptr("C")})
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	_, err = f.projects.Create(ctx, nil, ProjectInput{Title: ptr("T"), Description: ptr("D")})
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	_, err = f.skills.Create(ctx, nil, SkillInput{Name: ptr("Go"), Category: ptr(model.SkillBackend), Proficiency: ptr(1)})
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	err = f.blogs.Delete(ctx, nil, "anything")
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestOwnerOrAdmin_Projects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	project, err := f.projects.Create(ctx, f.alice, ProjectInput{Title: ptr("P"), Description: ptr("D")})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectOther, project.Category)
	assert.Equal(t, model.ProjectCompleted, project.Status)

	_, err = f.projects.Update(ctx, f.bob, project.ID, ProjectInput{Title: ptr("hijacked")})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := f.projects.Update(ctx, f.alice, project.ID, ProjectInput{Status: ptr(model.ProjectInProgress)})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectInProgress, updated.Status)

	updated, err = f.projects.Update(ctx, f.admin, project.ID, ProjectInput{Featured: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, f.alice.ID, updated.AuthorID, "admin edits keep the owner")

	assert.ErrorIs(t, f.projects.Delete(ctx, f.bob, project.ID), authz.ErrForbidden)
	require.NoError(t, f.projects.Delete(ctx, f.admin, project.ID))
	_, err = f.projects.Get(ctx, project.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOwnerOrAdmin_Skills(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	skill, err := f.skills.Create(ctx, f.alice, SkillInput{Name: ptr("Go"), Category: ptr(model.SkillBackend), Proficiency: ptr(80)})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSkillColor, skill.Color)

	_, err = f.skills.Update(ctx, f.bob, skill.ID, SkillInput{Proficiency: ptr(1)})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := f.skills.Update(ctx, f.admin, skill.ID, SkillInput{Proficiency: ptr(95)})
	require.NoError(t, err)
	assert.Equal(t, 95, updated.Proficiency)

	require.NoError(t, f.skills.Delete(ctx, f.alice, skill.ID))
}

func TestStrictOwner_AdminDeniedOnBlogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blog, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("T"), Content: ptr("C")})
	require.NoError(t, err)

	_, err = f.blogs.Update(ctx, f.admin, blog.ID, BlogInput{Title: ptr("admin edit")})
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.ErrorIs(t, f.blogs.Delete(ctx, f.admin, blog.ID), authz.ErrForbidden)
}

func TestMissingResourceIsNotFoundBeforePolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.blogs.Update(ctx, f.bob, "missing", BlogInput{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.projects.Update(ctx, f.bob, "missing", ProjectInput{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = f.skills.Delete(ctx, f.bob, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.contacts.Get(ctx, f.bob, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecipientOwner_Contacts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.contacts.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	msg, err := f.contacts.Create(ctx, ContactInput{
		PortfolioOwner: f.alice.ID,
		Name:           "Visitor",
		Email:          "visitor@example.com",
		Subject:        "Hello",
		Message:        "Nice portfolio",
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, msg.PortfolioOwnerID)
	assert.Equal(t, model.ContactNew, msg.Status)

	t.Run("other users cannot read or mutate", func(t *testing.T) {
		_, err := f.contacts.Get(ctx, f.bob, msg.ID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
		_, err = f.contacts.Update(ctx, f.bob, msg.ID, ContactPatch{Status: ptr(model.ContactArchived)})
		assert.ErrorIs(t, err, authz.ErrForbidden)
		assert.ErrorIs(t, f.contacts.Delete(ctx, f.bob, msg.ID), authz.ErrForbidden)

		inbox, err := f.contacts.Inbox(ctx, f.bob, "")
		require.NoError(t, err)
		assert.Empty(t, inbox)
	})

	t.Run("admins are not recipients", func(t *testing.T) {
		_, err := f.contacts.Get(ctx, f.admin, msg.ID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("anonymous readers are rejected", func(t *testing.T) {
		_, err := f.contacts.Get(ctx, nil, msg.ID)
		assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	})

	t.Run("recipient reads and the message is marked read", func(t *testing.T) {
		got, err := f.contacts.Get(ctx, f.alice, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ContactRead, got.Status)

		inbox, err := f.contacts.Inbox(ctx, f.alice, model.ContactRead)
		require.NoError(t, err)
		assert.Len(t, inbox, 1)
	})

	t.Run("reply marks replied", func(t *testing.T) {
		got, err := f.contacts.Update(ctx, f.alice, msg.ID, ContactPatch{ReplyMessage: ptr("Thanks!")})
		require.NoError(t, err)
		assert.True(t, got.Replied)
		assert.Equal(t, model.ContactReplied, got.Status)
		require.NotNil(t, got.ReplyDate)
		assert.Equal(t, 2024, got.ReplyDate.Year())
	})

	t.Run("recipient deletes", func(t *testing.T) {
		require.NoError(t, f.contacts.Delete(ctx, f.alice, msg.ID))
		_, err := f.contacts.Get(ctx, f.alice, msg.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestContactCreate_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	valid := ContactInput{PortfolioOwner: f.alice.ID, Name: "n", Email: "e@example.com", Subject: "s", Message: "m"}

	unknown := valid
	unknown.PortfolioOwner = "nobody"
	_, err := f.contacts.Create(ctx, unknown)
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := valid
	missing.Message = " "
	_, err = f.contacts.Create(ctx, missing)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.contacts.Inbox(ctx, f.alice, model.ContactStatus("spam"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlogVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("Draft"), Content: ptr("wip")})
	require.NoError(t, err)
	published, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("Out"), Content: ptr("done"), Published: ptr(true), Tags: &[]string{" go ", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, []string(published.Tags))

	t.Run("drafts are owner only", func(t *testing.T) {
		_, err := f.blogs.Get(ctx, nil, draft.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = f.blogs.Get(ctx, f.bob, draft.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		got, err := f.blogs.Get(ctx, f.alice, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Draft", got.Title)
	})

	t.Run("public listing hides drafts", func(t *testing.T) {
		list, err := f.blogs.List(ctx, store.BlogFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, published.ID, list[0].ID)

		mine, err := f.blogs.ListMine(ctx, f.alice)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("slug lookup is published only and counts views", func(t *testing.T) {
		got, err := f.blogs.GetBySlug(ctx, published.Slug)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Views)

		_, err = f.blogs.GetBySlug(ctx, draft.Slug)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("comments on drafts are hidden from others", func(t *testing.T) {
		_, err := f.blogs.AddComment(ctx, f.bob, draft.ID, CommentInput{Content: "first"})
		assert.ErrorIs(t, err, store.ErrNotFound)

		got, err := f.blogs.AddComment(ctx, f.bob, published.ID, CommentInput{Content: "great"})
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "bob", got.Comments[0].Name)
		require.NotNil(t, got.Comments[0].UserID)
		assert.Equal(t, f.bob.ID, *got.Comments[0].UserID)

		_, err = f.blogs.AddComment(ctx, nil, published.ID, CommentInput{Content: "anonymous without a name"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBlogSlugs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("Hello, World!"), Content: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	second, err := f.blogs.Create(ctx, f.bob, BlogInput{Title: ptr("Hello World"), Content: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", second.Slug)

	_, err = f.blogs.Update(ctx, f.bob, second.ID, BlogInput{Slug: ptr("Hello World")})
	assert.ErrorIs(t, err, store.ErrDuplicateSlug)

	my, err := f.blogs.Create(ctx, f.alice, BlogInput{Title: ptr("My"), Content: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, "my-2", my.Slug)

	_, err = f.blogs.Update(ctx, f.alice, first.ID, BlogInput{Slug: ptr("my")})
	assert.ErrorIs(t, err, store.ErrDuplicateSlug)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":         "hello-world",
		"  Go   generics  ":     "go-generics",
		"snake_case -- title":   "snake-case-title",
		"¿¡!!":                  "post",
		"Already-a-slug":        "already-a-slug",
		"Ünïcödé stripped 2024": "ncd-stripped-2024",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 1, ReadTime("one two three"))

	words := make([]byte, 0, 401*2)
	for i := 0; i < 401; i++ {
		words = append(words, 'w', ' ')
	}
	assert.Equal(t, 3, ReadTime(string(words)))
}
