package services

import (
	"context"
	"testing"

	"github.com/greenpress/apiserver/types"
)

type recordingPostRepo struct {
	created     *types.Post
	updated     *types.Post
	statusID    int
	statusValue string
}

func (r *recordingPostRepo) List(ctx context.Context, status string) ([]types.Post, error) {
	return nil, nil
}

func (r *recordingPostRepo) Get(ctx context.Context, id int) (types.Post, error) {
	return types.Post{}, nil
}

func (r *recordingPostRepo) GetPublished(ctx context.Context, id int) (types.Post, error) {
	return types.Post{}, nil
}

func (r *recordingPostRepo) Create(ctx context.Context, post types.Post) (types.Post, error) {
	r.created = &post
	return post, nil
}

func (r *recordingPostRepo) Update(ctx context.Context, post types.Post) (types.Post, error) {
	r.updated = &post
	return post, nil
}

func (r *recordingPostRepo) UpdateStatus(ctx context.Context, id int, status string) (types.Post, error) {
	r.statusID = id
	r.statusValue = status
	return types.Post{ID: id, Status: status}, nil
}

func (r *recordingPostRepo) Delete(ctx context.Context, id int) error { return nil }

func (r *recordingPostRepo) SearchText(ctx context.Context, q string) ([]types.Post, error) {
	return nil, nil
}

func (r *recordingPostRepo) ListByCategory(ctx context.Context, label string) ([]types.Post, error) {
	return nil, nil
}

func (r *recordingPostRepo) RewriteThumbnailPrefix(ctx context.Context, from, to string) (int64, error) {
	return 0, nil
}

func TestPostCreateDefaults(t *testing.T) {
	repo := &recordingPostRepo{}
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), types.Post{Title: "Untitled draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected the post to reach the repository")
	}
	if repo.created.Status != types.StatusDraft {
		t.Fatalf("expected draft status, got %q", repo.created.Status)
	}
	if repo.created.Type != types.TypeNormal {
		t.Fatalf("expected normal type, got %q", repo.created.Type)
	}
	if repo.created.Categories == nil {
		t.Fatal("expected categories to be initialized")
	}
}

func TestPostCreateKeepsExplicitStatus(t *testing.T) {
	repo := &recordingPostRepo{}
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), types.Post{
		Title:  "Straight to the site",
		Status: types.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if repo.created.Status != types.StatusPublished {
		t.Fatalf("expected published status to survive, got %q", repo.created.Status)
	}
}

func TestPostUpdateDefaults(t *testing.T) {
	repo := &recordingPostRepo{}
	svc := NewPostService(repo)

	_, err := svc.Update(context.Background(), types.Post{ID: 4, Title: "Edited"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if repo.updated.Type != types.TypeNormal {
		t.Fatalf("expected normal type, got %q", repo.updated.Type)
	}
	if repo.updated.Categories == nil {
		t.Fatal("expected categories to be initialized")
	}
}

func TestPublishAndUnpublish(t *testing.T) {
	repo := &recordingPostRepo{}
	svc := NewPostService(repo)

	post, err := svc.Publish(context.Background(), 7)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if repo.statusID != 7 || repo.statusValue != types.StatusPublished {
		t.Fatalf("expected status update to published for post 7, got %d %q", repo.statusID, repo.statusValue)
	}
	if post.Status != types.StatusPublished {
		t.Fatalf("unexpected returned status %q", post.Status)
	}

	if _, err := svc.Unpublish(context.Background(), 7); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if repo.statusValue != types.StatusDraft {
		t.Fatalf("expected status update to draft, got %q", repo.statusValue)
	}
}
