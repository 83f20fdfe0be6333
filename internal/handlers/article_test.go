package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/types"
)

func newArticleTestRouter(t *testing.T) (*chi.Mux, *fakePostRepo) {
	t.Helper()

	repo := newFakePostRepo()
	router := chi.NewRouter()
	router.Route("/articles", func(r chi.Router) {
		ArticleRouter(r, services.NewPostService(repo))
	})
	return router, repo
}

func TestArticleVisibility(t *testing.T) {
	router, repo := newArticleTestRouter(t)

	repo.posts[1] = types.Post{ID: 1, Title: "Public story", Status: types.StatusPublished}
	repo.posts[2] = types.Post{ID: 2, Title: "Work in progress", Status: types.StatusDraft}

	req := httptest.NewRequest(http.MethodGet, "/articles/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("published article: status %d", w.Code)
	}
	if post := decodePost(t, w); post.Title != "Public story" {
		t.Fatalf("unexpected title %q", post.Title)
	}

	// A draft and a nonexistent id must be indistinguishable.
	for _, path := range []string{"/articles/2", "/articles/999"} {
		req = httptest.NewRequest(http.MethodGet, path, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: status %d", path, w.Code)
		}
		if msg := errorMessage(t, w); msg != "article not found" {
			t.Fatalf("%s: unexpected error message %q", path, msg)
		}
	}
}

func TestArticleInvalidID(t *testing.T) {
	router, _ := newArticleTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/articles/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "invalid article id" {
		t.Fatalf("unexpected error message %q", msg)
	}
}
