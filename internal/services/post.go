package services

import (
	"context"

	"github.com/greenpress/apiserver/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context, status string) ([]types.Post, error)
	Get(ctx context.Context, id int) (types.Post, error)
	GetPublished(ctx context.Context, id int) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	UpdateStatus(ctx context.Context, id int, status string) (types.Post, error)
	Delete(ctx context.Context, id int) error
	SearchText(ctx context.Context, q string) ([]types.Post, error)
	ListByCategory(ctx context.Context, label string) ([]types.Post, error)
	RewriteThumbnailPrefix(ctx context.Context, from, to string) (int64, error)
}

// PostService encapsulates the publication lifecycle use-cases.
type PostService struct {
	repo PostRepository
}

func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) List(ctx context.Context, status string) ([]types.Post, error) {
	return s.repo.List(ctx, status)
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	return s.repo.Get(ctx, id)
}

// GetPublished resolves a post on the public surface; drafts come back as
// not found.
func (s *PostService) GetPublished(ctx context.Context, id int) (types.Post, error) {
	return s.repo.GetPublished(ctx, id)
}

// Create persists a new post. A post starts as a draft unless the caller
// explicitly chose a status; the content type defaults to normal.
func (s *PostService) Create(ctx context.Context, post types.Post) (types.Post, error) {
	if post.Status == "" {
		post.Status = types.StatusDraft
	}
	if post.Type == "" {
		post.Type = types.TypeNormal
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	return s.repo.Create(ctx, post)
}

func (s *PostService) Update(ctx context.Context, post types.Post) (types.Post, error) {
	if post.Type == "" {
		post.Type = types.TypeNormal
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	return s.repo.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Publish moves a post to the public site. The transition touches only the
// status field and is a no-op on an already-published post.
func (s *PostService) Publish(ctx context.Context, id int) (types.Post, error) {
	return s.repo.UpdateStatus(ctx, id, types.StatusPublished)
}

// Unpublish pulls a post back to draft.
func (s *PostService) Unpublish(ctx context.Context, id int) (types.Post, error) {
	return s.repo.UpdateStatus(ctx, id, types.StatusDraft)
}
