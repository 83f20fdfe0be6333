// Package storage hosts uploaded images behind a backend-agnostic API.
// Objects are written once and addressed by durable public URLs; the
// rest of the system only ever stores those URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/greenpress/apiserver/config"
)

// ErrNotExist is returned by Stat when the object is gone from the
// bucket. Backends translate their own not-found errors into it.
var ErrNotExist = errors.New("object does not exist")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Stat(ctx context.Context, key string) error
	PublicURL(key string) string
	Bucket() string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// FromConfig builds the backend named by the configuration. It does not
// touch the bucket; callers that need it present call EnsureBucket.
func FromConfig(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	var backend ObjectStorage
	var err error
	switch cfg.Backend {
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	case "minio", "":
		backend, err = NewMinioClient(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewStorage(backend), nil
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads an object to the configured bucket.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

// Stat checks that an object is still present in the configured bucket.
func (s *Storage) Stat(ctx context.Context, key string) error {
	return s.backend.Stat(ctx, key)
}

// PublicURL returns the durable URL an object is served from. With an
// empty key it returns the bucket's public base prefix.
func (s *Storage) PublicURL(key string) string {
	return s.backend.PublicURL(key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}
