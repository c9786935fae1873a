// Package feed renders the machine-readable documents served by the site:
// llms.txt summaries, the XML sitemap, and the RSS feed. Every function here
// is pure; callers supply the post list and the site settings.
package feed

// Post is a blog post as exposed by a post source. Published is kept as the
// source wrote it and is only parsed where a feed format requires a date.
type Post struct {
	Slug        string
	Title       string
	Description string
	Published   string
	Category    string
	Draft       bool
}

// StaticPage is a non-post page listed in the sitemap.
type StaticPage struct {
	Path       string  // relative to the site URL, "" for the root
	Priority   float64 // 0.0 to 1.0
	ChangeFreq string
}

// DefaultStaticPages are the hand-written pages of the site, in sitemap order.
var DefaultStaticPages = []StaticPage{
	{Path: "", Priority: 1.0, ChangeFreq: "weekly"},
	{Path: "about", Priority: 0.8, ChangeFreq: "monthly"},
	{Path: "experience", Priority: 0.7, ChangeFreq: "monthly"},
	{Path: "projects", Priority: 0.7, ChangeFreq: "monthly"},
}

// Public returns posts with drafts removed, preserving order.
func Public(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}

// Slugs returns the slugs of all non-draft posts, in order.
func Slugs(posts []Post) []string {
	var slugs []string
	for _, p := range posts {
		if !p.Draft {
			slugs = append(slugs, p.Slug)
		}
	}
	return slugs
}
