package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/internal/store"
	"github.com/greenpress/apiserver/types"
)

// PostHandler exposes the staff-facing post lifecycle endpoints.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler constructs a PostHandler with the provided service.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRouter registers the post lifecycle routes. Every route requires an
// authenticated principal.
func PostRouter(r chi.Router, postService *services.PostService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPostHandler(postService)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Get("/{postID}", handler.Get)
	r.Put("/{postID}", handler.Update)
	r.Delete("/{postID}", handler.Delete)
	r.Post("/{postID}/publish", handler.Publish)
	r.Post("/{postID}/unpublish", handler.Unpublish)
}

// PostRequest is the payload accepted by create and update.
type PostRequest struct {
	Title      string   `json:"title"`
	Sapo       string   `json:"sapo"`
	Author     string   `json:"author"`
	Thumbnail  string   `json:"thumbnail"`
	Tags       string   `json:"tags"`
	Content    string   `json:"content"`
	PageURL    string   `json:"page_url"`
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
	Status     string   `json:"status"`
}

// List returns posts newest first, optionally filtered by status.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !types.ValidStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	posts, err := h.postService.List(r.Context(), status)
	if err != nil {
		slog.Error("posts: list", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Create stores a new post owned by the authenticated principal.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := postFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	post.AuthorID = principal.ID

	created, err := h.postService.Create(r.Context(), post)
	if err != nil {
		slog.Error("posts: create", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get returns a single post regardless of its status.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		slog.Error("posts: get", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Update replaces a post's editable fields.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := postFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	post.ID = id
	post.AuthorID = principal.ID

	updated, err := h.postService.Update(r.Context(), post)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		slog.Error("posts: update", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a post permanently.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		slog.Error("posts: delete", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Publish flips a post to the published status.
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, types.StatusPublished)
}

// Unpublish flips a post back to draft.
func (h *PostHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, types.StatusDraft)
}

func (h *PostHandler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var post types.Post
	if status == types.StatusPublished {
		post, err = h.postService.Publish(r.Context(), id)
	} else {
		post, err = h.postService.Unpublish(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		slog.Error("posts: set status", "id", id, "status", status, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func postFromRequest(req PostRequest) (types.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return types.Post{}, errors.New("title is required")
	}
	if req.Status != "" && !types.ValidStatus(req.Status) {
		return types.Post{}, errors.New("invalid status")
	}
	if req.Type != "" && !types.ValidType(req.Type) {
		return types.Post{}, errors.New("invalid type")
	}

	return types.Post{
		Title:      req.Title,
		Sapo:       req.Sapo,
		Author:     req.Author,
		Thumbnail:  req.Thumbnail,
		Tags:       req.Tags,
		Content:    req.Content,
		PageURL:    req.PageURL,
		Type:       req.Type,
		Categories: req.Categories,
		Status:     req.Status,
	}, nil
}

func parsePostID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "postID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, errors.New("post id out of range")
	}
	return id, nil
}
