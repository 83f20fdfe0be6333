package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greenpress/apiserver/types"
)

// PostRepository handles persistence for posts.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, title, sapo, author, author_id, thumbnail, tags, content, page_url, type, categories, status, created_at, updated_at`

// Listings are newest-first everywhere; id breaks ties between posts
// created in the same instant.
const postOrder = ` ORDER BY created_at DESC, id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(s rowScanner) (types.Post, error) {
	var post types.Post
	var categoriesJSON []byte
	if err := s.Scan(
		&post.ID,
		&post.Title,
		&post.Sapo,
		&post.Author,
		&post.AuthorID,
		&post.Thumbnail,
		&post.Tags,
		&post.Content,
		&post.PageURL,
		&post.Type,
		&categoriesJSON,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return types.Post{}, err
	}
	if err := json.Unmarshal(categoriesJSON, &post.Categories); err != nil {
		return types.Post{}, fmt.Errorf("decode categories: %w", err)
	}
	return post, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]types.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// List returns posts newest-first, optionally filtered by status. An empty
// status returns every post regardless of lifecycle state.
func (r *PostRepository) List(ctx context.Context, status string) ([]types.Post, error) {
	if status == "" {
		return r.queryPosts(ctx, `SELECT `+postColumns+` FROM posts`+postOrder)
	}
	return r.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE status = $1`+postOrder, status)
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

// GetPublished resolves an id on the public surface: drafts are
// indistinguishable from missing posts.
func (r *PostRepository) GetPublished(ctx context.Context, id int) (types.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND status = $2`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, types.StatusPublished))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	categoriesJSON, err := json.Marshal(post.Categories)
	if err != nil {
		return types.Post{}, err
	}

	const query = `
		INSERT INTO posts (title, sapo, author, author_id, thumbnail, tags, content, page_url, type, categories, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Sapo,
		post.Author,
		post.AuthorID,
		post.Thumbnail,
		post.Tags,
		post.Content,
		post.PageURL,
		post.Type,
		categoriesJSON,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return types.Post{}, err
	}

	return post, nil
}

// Update replaces every mutable field of the post. Status is included:
// a full update is the unchecked second path between the two lifecycle
// states.
func (r *PostRepository) Update(ctx context.Context, post types.Post) (types.Post, error) {
	post.UpdatedAt = time.Now()

	categoriesJSON, err := json.Marshal(post.Categories)
	if err != nil {
		return types.Post{}, err
	}

	const query = `
		UPDATE posts
		SET title = $1,
			sapo = $2,
			author = $3,
			author_id = $4,
			thumbnail = $5,
			tags = $6,
			content = $7,
			page_url = $8,
			type = $9,
			categories = $10,
			status = $11,
			updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(
		ctx,
		query,
		post.Title,
		post.Sapo,
		post.Author,
		post.AuthorID,
		post.Thumbnail,
		post.Tags,
		post.Content,
		post.PageURL,
		post.Type,
		categoriesJSON,
		post.Status,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return types.Post{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Post{}, err
	}
	if affected == 0 {
		return types.Post{}, ErrNotFound
	}

	return r.Get(ctx, post.ID)
}

// UpdateStatus flips the lifecycle state and touches nothing else, not
// even updated_at. A publish/unpublish round trip leaves the record
// bit-identical outside the status column.
func (r *PostRepository) UpdateStatus(ctx context.Context, id int, status string) (types.Post, error) {
	const query = `UPDATE posts SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return types.Post{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Post{}, err
	}
	if affected == 0 {
		return types.Post{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchText finds published posts with a case-insensitive substring match
// in title, sapo or tags.
func (r *PostRepository) SearchText(ctx context.Context, q string) ([]types.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = $1
		  AND (title ILIKE $2 ESCAPE '\' OR sapo ILIKE $2 ESCAPE '\' OR tags ILIKE $2 ESCAPE '\')` + postOrder
	pattern := "%" + escapeLike(q) + "%"
	return r.queryPosts(ctx, query, types.StatusPublished, pattern)
}

// ListByCategory finds published posts whose category set contains the
// exact label. The jsonb ? operator matches whole elements, never
// substrings of them.
func (r *PostRepository) ListByCategory(ctx context.Context, label string) ([]types.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = $1
		  AND categories ? $2` + postOrder
	return r.queryPosts(ctx, query, types.StatusPublished, label)
}

// RewriteThumbnailPrefix repoints thumbnail URLs from one base to another
// and reports how many rows changed. Used by the media migrate command.
func (r *PostRepository) RewriteThumbnailPrefix(ctx context.Context, from, to string) (int64, error) {
	const query = `
		UPDATE posts
		SET thumbnail = $2 || substr(thumbnail, char_length($1) + 1)
		WHERE left(thumbnail, char_length($1)) = $1`
	result, err := r.db.ExecContext(ctx, query, from, to)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
