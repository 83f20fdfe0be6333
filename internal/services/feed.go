package services

import (
	"context"

	"github.com/greenpress/apiserver/types"
)

const (
	// recentPostCount is how many posts follow the highlight in the
	// "recent" strip.
	recentPostCount = 2

	// sectionPostCap is the maximum number of posts shown per topical
	// section.
	sectionPostCap = 4
)

// The five fixed topical sections of the home page, each defined by a
// disjoint group of category labels.
var (
	newsLabels       = []string{"domestic-news", "world-news"}
	experienceLabels = []string{"cuisine", "destination", "travel-backpack", "green-transport"}
	profilesLabels   = []string{"green-citizen", "culture-ambassador", "green-enterprise"}
	academicLabels   = []string{"green-tech", "sustainable-knowledge", "policy-data"}
	multimediaLabels = []string{"photo", "video", "infographic", "emagazine"}
)

// FeedService builds the aggregated home-page payload.
type FeedService struct {
	repo PostRepository
}

func NewFeedService(repo PostRepository) *FeedService {
	return &FeedService{repo: repo}
}

// Home loads the published set newest-first and aggregates it. The result
// is recomputed on every call; nothing is cached and nothing is mutated.
func (s *FeedService) Home(ctx context.Context) (types.HomeFeed, error) {
	published, err := s.repo.List(ctx, types.StatusPublished)
	if err != nil {
		return types.HomeFeed{}, err
	}
	return BuildHomeFeed(published), nil
}

// BuildHomeFeed aggregates published posts, ordered newest-first, into the
// home-page payload:
//
//   - highlight is the freshest post, recent the next two;
//   - each section collects, in recency order, the first four posts whose
//     category set intersects the section's label group.
//
// Sections scan the full input: a post used as highlight or recent still
// appears in any section it qualifies for, and a post with several
// qualifying labels lands in every matching section.
func BuildHomeFeed(published []types.Post) types.HomeFeed {
	feed := types.HomeFeed{
		Recent:     []types.Post{},
		News:       []types.Post{},
		Experience: []types.Post{},
		Profiles:   []types.Post{},
		Academic:   []types.Post{},
		Multimedia: []types.Post{},
	}
	if len(published) == 0 {
		return feed
	}

	highlight := published[0]
	feed.Highlight = &highlight

	recent := published[1:]
	if len(recent) > recentPostCount {
		recent = recent[:recentPostCount]
	}
	feed.Recent = append(feed.Recent, recent...)

	feed.News = sectionPosts(published, newsLabels)
	feed.Experience = sectionPosts(published, experienceLabels)
	feed.Profiles = sectionPosts(published, profilesLabels)
	feed.Academic = sectionPosts(published, academicLabels)
	feed.Multimedia = sectionPosts(published, multimediaLabels)

	return feed
}

func sectionPosts(published []types.Post, labels []string) []types.Post {
	section := make([]types.Post, 0, sectionPostCap)
	for _, post := range published {
		if len(section) == sectionPostCap {
			break
		}
		if hasAnyLabel(post, labels) {
			section = append(section, post)
		}
	}
	return section
}

func hasAnyLabel(post types.Post, labels []string) bool {
	for _, label := range labels {
		if post.HasCategory(label) {
			return true
		}
	}
	return false
}
