package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/internal/store"
)

// ArticleHandler serves single published articles to readers.
type ArticleHandler struct {
	postService *services.PostService
}

// NewArticleHandler constructs an ArticleHandler with the provided service.
func NewArticleHandler(postService *services.PostService) *ArticleHandler {
	return &ArticleHandler{postService: postService}
}

// ArticleRouter registers the public article routes.
func ArticleRouter(r chi.Router, postService *services.PostService) {
	handler := NewArticleHandler(postService)

	r.Get("/{articleID}", handler.Get)
}

// Get returns one published article. Drafts and unknown ids look the same
// from the outside.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "articleID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	post, err := h.postService.GetPublished(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		slog.Error("articles: get", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load article")
		return
	}

	writeJSON(w, http.StatusOK, post)
}
