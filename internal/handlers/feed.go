package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
)

// FeedHandler serves the aggregated home feed.
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler constructs a FeedHandler with the provided service.
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// FeedRouter registers the public feed routes.
func FeedRouter(r chi.Router, feedService *services.FeedService) {
	handler := NewFeedHandler(feedService)

	r.Get("/home", handler.Home)
}

// Home returns the home-page feed built from published posts.
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Home(r.Context())
	if err != nil {
		slog.Error("feed: home", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to build feed")
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
