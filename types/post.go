package types

import "time"

// Post lifecycle statuses. A post is either an unpublished draft or live
// on the public site; there is no archival state.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post content types. An emagazine post links out to an externally hosted
// page instead of carrying inline content.
const (
	TypeNormal    = "normal"
	TypeEmagazine = "emagazine"
)

// ValidStatus reports whether status is one of the two legal lifecycle values.
func ValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished
}

// ValidType reports whether t is a known post content type.
func ValidType(t string) bool {
	return t == TypeNormal || t == TypeEmagazine
}

// Post represents an article in the newsroom, from draft through
// publication on the public site.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// Title is the article headline.
	Title string `json:"title" db:"title"`

	// Sapo is the short standfirst shown under the headline in listings
	// and on the article page.
	Sapo string `json:"sapo" db:"sapo"`

	// Author is the display byline as it should appear on the site.
	Author string `json:"author" db:"author"`

	// AuthorID is the account that owns the post. It is always set from
	// the authenticated principal on create and update, never from the
	// request body.
	AuthorID int `json:"author_id" db:"author_id"`

	// Thumbnail is the URL of the article's cover image.
	Thumbnail string `json:"thumbnail" db:"thumbnail"`

	// Tags is a freeform comma-style tag string used by text search.
	Tags string `json:"tags" db:"tags"`

	// Content is the inline article body. Empty for emagazine posts,
	// which link out via PageURL instead.
	Content string `json:"content" db:"content"`

	// PageURL is the external page an emagazine post links to.
	PageURL string `json:"page_url,omitempty" db:"page_url"`

	// Type discriminates normal articles from externally hosted
	// emagazine issues.
	Type string `json:"type" db:"type"`

	// Categories is the set of topical labels the post belongs to.
	// Membership is many-to-many: a post may carry several labels and a
	// label groups many posts.
	Categories []string `json:"categories" db:"categories"`

	// Status is the lifecycle state, "draft" or "published".
	Status string `json:"status" db:"status"`

	// CreatedAt is the timestamp at which the post was created. Listings
	// and the home feed order by it, newest first.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent full update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasCategory reports whether the post carries the exact category label.
func (p Post) HasCategory(label string) bool {
	for _, c := range p.Categories {
		if c == label {
			return true
		}
	}
	return false
}
