package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/folio/pkg/content"
	"github.com/doodlesbykumbi/folio/pkg/identity"
	"github.com/doodlesbykumbi/folio/pkg/server"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

const nounBlog = "blog"

// RegisterBlogsEndpoints registers the blog routes. /api/blogs/my is
// registered before /api/blogs/{slug} so it is not taken for a slug.
func RegisterBlogsEndpoints(s *server.Server) {
	errs := newErrorWriter(s)
	auth := s.Authenticator
	blogs := s.Blogs

	s.Router.Handle("/api/blogs", auth.Optional(handleListBlogs(blogs, errs))).Methods("GET")
	s.Router.Handle("/api/blogs/my", auth.Middleware(handleMyBlogs(blogs, errs))).Methods("GET")
	s.Router.Handle("/api/blogs/id/{id}", auth.Optional(handleGetBlog(blogs, errs))).Methods("GET")
	s.Router.HandleFunc("/api/blogs/{slug}", handleGetBlogBySlug(blogs, errs)).Methods("GET")
	s.Router.Handle("/api/blogs", auth.Middleware(handleCreateBlog(blogs, errs))).Methods("POST")
	s.Router.Handle("/api/blogs/{id}", auth.Middleware(handleUpdateBlog(blogs, errs))).Methods("PUT")
	s.Router.Handle("/api/blogs/{id}", auth.Middleware(handleDeleteBlog(blogs, errs))).Methods("DELETE")
	s.Router.Handle("/api/blogs/{id}/comments", auth.Optional(handleAddComment(blogs, errs))).Methods("POST")
}

func handleListBlogs(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		featured, err := queryBool(r, "featured")
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}

		list, err := blogs.List(r.Context(), store.BlogFilter{
			Category: q.Get("category"),
			Tag:      q.Get("tag"),
			Featured: featured,
			AuthorID: q.Get("user"),
		})
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusOK, orEmpty(list))
	}
}

func handleMyBlogs(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		list, err := blogs.ListMine(r.Context(), caller)
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusOK, orEmpty(list))
	}
}

func handleGetBlog(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := identity.Get(r.Context())

		blog, err := blogs.Get(r.Context(), viewer, mux.Vars(r)["id"])
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusOK, blog)
	}
}

func handleGetBlogBySlug(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogs.GetBySlug(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusOK, blog)
	}
}

func handleCreateBlog(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.BlogInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}

		blog, err := blogs.Create(r.Context(), caller, in)
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusCreated, blog)
	}
}

func handleUpdateBlog(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		var in content.BlogInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}

		blog, err := blogs.Update(r.Context(), caller, mux.Vars(r)["id"], in)
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusOK, blog)
	}
}

func handleDeleteBlog(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := identity.Get(r.Context())

		if err := blogs.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithMessage(w, http.StatusOK, "Blog deleted successfully")
	}
}

func handleAddComment(blogs *content.BlogService, errs *errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := identity.Get(r.Context())

		var in content.CommentInput
		if err := decodeJSON(r, &in); err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}

		blog, err := blogs.AddComment(r.Context(), viewer, mux.Vars(r)["id"], in)
		if err != nil {
			errs.write(w, r, err, nounBlog)
			return
		}
		respondWithJSON(w, http.StatusCreated, blog)
	}
}
