package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
)

// SearchHandler serves the public search endpoints.
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler constructs a SearchHandler with the provided service.
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRouter registers the public search routes.
func SearchRouter(r chi.Router, searchService *services.SearchService) {
	handler := NewSearchHandler(searchService)

	r.Get("/", handler.Text)
	r.Get("/category/{label}", handler.ByCategory)
}

// Text returns published posts matching the q parameter in title, sapo or
// tags.
func (h *SearchHandler) Text(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	posts, err := h.searchService.Text(r.Context(), query)
	if err != nil {
		slog.Error("search: text", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to search posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// ByCategory returns published posts carrying the exact category label.
func (h *SearchHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	if strings.TrimSpace(label) == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	posts, err := h.searchService.ByCategory(r.Context(), label)
	if err != nil {
		slog.Error("search: category", "label", label, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to search posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}
