package types

// HomeFeed is the aggregated payload rendered on the landing page: the
// single freshest published post as highlight, the next two as recent, and
// five fixed topical sections.
//
// Section membership is non-exclusive and never deduplicated: a post with
// several qualifying labels appears in every matching section, and the
// highlight may also appear inside a section.
type HomeFeed struct {
	// Highlight is the freshest published post, or null when nothing has
	// been published yet.
	Highlight *Post `json:"highlight"`

	// Recent holds the next two freshest posts after the highlight.
	Recent []Post `json:"recent"`

	// News collects domestic and world news coverage.
	News []Post `json:"news"`

	// Experience collects cuisine, destination, backpacking and green
	// transport stories.
	Experience []Post `json:"experience"`

	// Profiles collects portraits of green citizens, culture ambassadors
	// and green enterprises.
	Profiles []Post `json:"profiles"`

	// Academic collects green tech, sustainable knowledge and policy/data
	// pieces.
	Academic []Post `json:"academic"`

	// Multimedia collects photo, video, infographic and emagazine posts.
	Multimedia []Post `json:"multimedia"`
}
