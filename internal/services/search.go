package services

import (
	"context"

	"github.com/greenpress/apiserver/types"
)

// SearchService answers ad-hoc queries over the published set. Both query
// shapes run directly against the store's own predicates; there is no
// separate index to keep in sync.
type SearchService struct {
	repo PostRepository
}

func NewSearchService(repo PostRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Text finds published posts with a case-insensitive substring match in
// title, sapo or tags, newest-first.
func (s *SearchService) Text(ctx context.Context, q string) ([]types.Post, error) {
	return s.repo.SearchText(ctx, q)
}

// ByCategory finds published posts carrying the exact category label,
// newest-first.
func (s *SearchService) ByCategory(ctx context.Context, label string) ([]types.Post, error) {
	return s.repo.ListByCategory(ctx, label)
}
