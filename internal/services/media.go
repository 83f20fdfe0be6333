package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/greenpress/apiserver/internal/storage"
)

// ErrUnsupportedFormat is returned when an upload's extension is outside
// the image allowlist.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrEmptyImage is returned when an upload carries no bytes.
var ErrEmptyImage = errors.New("empty image file")

// Allowed upload formats and the content type each is served with.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MediaService stores uploaded images in object storage and hands back
// durable public URLs.
type MediaService struct {
	storage *storage.Storage
}

func NewMediaService(st *storage.Storage) *MediaService {
	return &MediaService{storage: st}
}

// Store validates the upload against the format allowlist, writes it under
// a fresh uuid key and returns the object's public URL.
func (s *MediaService) Store(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return "", ErrUnsupportedFormat
	}

	key := uuid.NewString() + ext
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("store image %s: %w", key, err)
	}
	return s.storage.PublicURL(key), nil
}

// KeyFromURL extracts the object key from a URL served by our bucket.
// It reports false for URLs hosted elsewhere.
func (s *MediaService) KeyFromURL(url string) (string, bool) {
	base := s.storage.PublicURL("")
	key := strings.TrimPrefix(url, base)
	if key == url || key == "" {
		return "", false
	}
	return key, true
}

// Exists reports whether the object behind key is still present in the
// bucket.
func (s *MediaService) Exists(ctx context.Context, key string) (bool, error) {
	err := s.storage.Stat(ctx, key)
	if errors.Is(err, storage.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
