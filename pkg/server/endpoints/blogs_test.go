package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server"
)

func createBlog(t *testing.T, api *testAPI, bearer string, body map[string]interface{}) model.Blog {
	t.Helper()
	w := api.do("POST", "/api/blogs", bearer, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var blog model.Blog
	decode(t, w, &blog)
	return blog
}

func TestBlogLifecycle(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bob")

	blog := createBlog(t, api, alice.Token, map[string]interface{}{"title": "T", "content": "C"})
	assert.Equal(t, alice.User.ID, blog.AuthorID)

	w := api.do("DELETE", "/api/blogs/"+blog.ID, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do("GET", "/api/blogs/id/"+blog.ID, alice.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "blog survives a forbidden delete")

	w = api.do("DELETE", "/api/blogs/"+blog.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog deleted successfully"}`, w.Body.String())

	w = api.do("GET", "/api/blogs/id/"+blog.ID, alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlogCreate_IgnoresOwnerFields(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bob")

	blog := createBlog(t, api, alice.Token, map[string]interface{}{
		"title":    "Mine",
		"content":  "body",
		"author":   bob.User.ID,
		"authorId": bob.User.ID,
		"user":     bob.User.ID,
	})
	assert.Equal(t, alice.User.ID, blog.AuthorID)
	require.NotNil(t, blog.Author)
	assert.Equal(t, "alice", blog.Author.Name)

	w := api.do("PUT", "/api/blogs/"+blog.ID, alice.Token, map[string]interface{}{"authorId": bob.User.ID, "title": "Still mine"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Blog
	decode(t, w, &updated)
	assert.Equal(t, alice.User.ID, updated.AuthorID)
	assert.Equal(t, "Still mine", updated.Title)
}

func TestBlogs_AdminHasNoOverride(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	admin := api.register("root")
	api.promote(admin.User.ID)

	blog := createBlog(t, api, alice.Token, map[string]interface{}{"title": "T", "content": "C"})

	w := api.do("PUT", "/api/blogs/"+blog.ID, admin.Token, map[string]string{"title": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do("DELETE", "/api/blogs/"+blog.ID, admin.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBlogs_ConcealForbidden(t *testing.T) {
	api := newTestAPI(t, withConcealForbidden())
	alice := api.register("alice")
	bob := api.register("bob")

	blog := createBlog(t, api, alice.Token, map[string]interface{}{"title": "T", "content": "C"})

	forbidden := api.do("DELETE", "/api/blogs/"+blog.ID, bob.Token, nil)
	missing := api.do("DELETE", "/api/blogs/does-not-exist", bob.Token, nil)

	assert.Equal(t, http.StatusNotFound, forbidden.Code)
	assert.Equal(t, missing.Code, forbidden.Code)
	assert.Equal(t, missing.Body.String(), forbidden.Body.String())
}

func TestBlogs_PublicReads(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bob")

	draft := createBlog(t, api, alice.Token, map[string]interface{}{"title": "Draft", "content": "wip"})
	live := createBlog(t, api, alice.Token, map[string]interface{}{
		"title": "Going Live", "content": "done", "published": true, "tags": []string{"go"},
	})
	assert.Equal(t, "going-live", live.Slug)

	t.Run("list shows published only", func(t *testing.T) {
		w := api.do("GET", "/api/blogs", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []model.Blog
		decode(t, w, &list)
		require.Len(t, list, 1)
		assert.Equal(t, live.ID, list[0].ID)

		w = api.do("GET", "/api/blogs?tag=rust", "", nil)
		assert.JSONEq(t, `[]`, w.Body.String())

		w = api.do("GET", "/api/blogs?featured=maybe", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("my blogs include drafts", func(t *testing.T) {
		w := api.do("GET", "/api/blogs/my", alice.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []model.Blog
		decode(t, w, &list)
		assert.Len(t, list, 2)

		w = api.do("GET", "/api/blogs/my", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("drafts by id are owner only", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/blogs/id/"+draft.ID, "", nil).Code)
		assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/blogs/id/"+draft.ID, bob.Token, nil).Code)
		assert.Equal(t, http.StatusOK, api.do("GET", "/api/blogs/id/"+draft.ID, alice.Token, nil).Code)
	})

	t.Run("slug lookup counts views", func(t *testing.T) {
		api.do("GET", "/api/blogs/going-live", "", nil)
		w := api.do("GET", "/api/blogs/going-live", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got model.Blog
		decode(t, w, &got)
		assert.Equal(t, 2, got.Views)

		assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/blogs/"+draft.Slug, "", nil).Code)
	})

	t.Run("comments", func(t *testing.T) {
		w := api.do("POST", "/api/blogs/"+live.ID+"/comments", "", map[string]string{"name": "Visitor", "content": "Nice"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = api.do("POST", "/api/blogs/"+live.ID+"/comments", bob.Token, map[string]string{"content": "Agreed"})
		require.Equal(t, http.StatusCreated, w.Code)
		var got model.Blog
		decode(t, w, &got)
		require.Len(t, got.Comments, 2)
		assert.Equal(t, "bob", got.Comments[1].Name)

		w = api.do("POST", "/api/blogs/"+draft.ID+"/comments", bob.Token, map[string]string{"content": "Early"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBlogs_DuplicateSlug(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")

	first := createBlog(t, api, alice.Token, map[string]interface{}{"title": "Same", "content": "C"})
	second := createBlog(t, api, alice.Token, map[string]interface{}{"title": "Same", "content": "C"})
	assert.Equal(t, "same", first.Slug)
	assert.Equal(t, "same-2", second.Slug)

	w := api.do("PUT", "/api/blogs/"+second.ID, alice.Token, map[string]string{"slug": "same"})
	assert.Equal(t, http.StatusConflict, w.Code)

	t.Run("route names are not handed out as slugs", func(t *testing.T) {
		my := createBlog(t, api, alice.Token, map[string]interface{}{"title": "My", "content": "C", "published": true})
		assert.Equal(t, "my-2", my.Slug)

		w := api.do("GET", "/api/blogs/"+my.Slug, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got model.Blog
		decode(t, w, &got)
		assert.Equal(t, my.ID, got.ID)
	})
}

func TestBlogs_StoreFailureIsInternal(t *testing.T) {
	blogs := &MockBlogsStore{}
	blogs.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset by peer"))

	api := newTestAPI(t, withStores(func(s *server.Stores) { s.Blogs = blogs }))

	w := api.do("GET", "/api/blogs", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	blogs.AssertExpectations(t)
}
