package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/types"
)

func newSearchTestRouter(t *testing.T) (*chi.Mux, *fakePostRepo) {
	t.Helper()

	repo := newFakePostRepo()
	router := chi.NewRouter()
	router.Route("/search", func(r chi.Router) {
		SearchRouter(r, services.NewSearchService(repo))
	})
	return router, repo
}

func searchGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePosts(t *testing.T, w *httptest.ResponseRecorder) []types.Post {
	t.Helper()

	var posts []types.Post
	if err := json.NewDecoder(w.Body).Decode(&posts); err != nil {
		t.Fatalf("decode posts from %q: %v", w.Body.String(), err)
	}
	return posts
}

func TestSearchRequiresQuery(t *testing.T) {
	router, _ := newSearchTestRouter(t)

	for _, path := range []string{"/search", "/search?q=", "/search?q=%20%20"} {
		w := searchGet(t, router, path)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", path, w.Code)
		}
		if msg := errorMessage(t, w); msg != "query is required" {
			t.Fatalf("%s: unexpected error message %q", path, msg)
		}
	}
}

func TestSearchText(t *testing.T) {
	router, repo := newSearchTestRouter(t)

	repo.posts[1] = types.Post{ID: 1, Title: "Mangrove planting day", Tags: "coast", Status: types.StatusPublished}
	repo.posts[2] = types.Post{ID: 2, Title: "Mangrove draft notes", Status: types.StatusDraft}
	repo.posts[3] = types.Post{ID: 3, Title: "City cycling", Sapo: "mangrove nurseries on the roadside", Status: types.StatusPublished}

	w := searchGet(t, router, "/search?q=mangrove")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	posts := decodePosts(t, w)
	if len(posts) != 2 {
		t.Fatalf("expected two published matches, got %d", len(posts))
	}
	if posts[0].ID != 3 || posts[1].ID != 1 {
		t.Fatalf("expected newest-first matches, got %+v", posts)
	}

	w = searchGet(t, router, "/search?q=coast")
	if posts := decodePosts(t, w); len(posts) != 1 || posts[0].ID != 1 {
		t.Fatalf("expected the tag match, got %+v", posts)
	}
}

func TestSearchNoMatchesIsEmptyArray(t *testing.T) {
	router, _ := newSearchTestRouter(t)

	w := searchGet(t, router, "/search?q=nothing-here")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected [] for no matches, got %q", body)
	}
}

func TestSearchByCategory(t *testing.T) {
	router, repo := newSearchTestRouter(t)

	repo.posts[1] = types.Post{ID: 1, Title: "Battery lab", Categories: []string{"green-tech"}, Status: types.StatusPublished}
	repo.posts[2] = types.Post{ID: 2, Title: "Border market", Categories: []string{"domestic-news"}, Status: types.StatusPublished}
	repo.posts[3] = types.Post{ID: 3, Title: "Lab leak draft", Categories: []string{"green-tech"}, Status: types.StatusDraft}

	w := searchGet(t, router, "/search/category/green-tech")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	posts := decodePosts(t, w)
	if len(posts) != 1 || posts[0].ID != 1 {
		t.Fatalf("expected only the published green-tech post, got %+v", posts)
	}

	// Labels match whole values, not substrings.
	w = searchGet(t, router, "/search/category/green")
	if posts := decodePosts(t, w); len(posts) != 0 {
		t.Fatalf("expected no partial-label matches, got %+v", posts)
	}
}
