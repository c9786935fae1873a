// Package site holds the fixed identity of the blog: its name, canonical URL,
// social handles, and the category labels posts are filed under.
package site

import "sort"

const (
	Name        = "blackkspydo"
	URL         = "https://blackkspydo.com/"
	Title       = "blackkspydo"
	Description = "Software engineer from Kathmandu, Nepal. Writing about web development and developer tools."
	Image       = URL + "social.png"
	PostImage   = "https://social-share-images.vercel.app/"

	TwitterHandle = "@blackkspydo"
	GitHub        = "https://github.com/blackkspydo"

	// FileURL points at the post sources on GitHub, e.g. FileURL + "/<slug>".
	FileURL = "https://github.com/blackkspydo/spydo-web-v3/blob/main/posts"
	// ImagesURL serves raw post images, e.g. ImagesURL + "/<slug>/images/<file>".
	ImagesURL = "https://raw.githubusercontent.com/blackkspydo/spydo-web-v3/main/posts"
)

var categories = map[string]string{
	"javascript": "JavaScript",
	"react":      "React",
	"css":        "CSS",
	"general":    "General",
	"design":     "Design",
	"git":        "Git & GitHub",
	"next":       "Next.js",
	"typescript": "TypeScript",
	"svelte":     "Svelte",
	"sveltekit":  "SvelteKit",
}

// IsCategory reports whether key is one of the known category keys.
func IsCategory(key string) bool {
	_, ok := categories[key]
	return ok
}

// CategoryLabel returns the display label for key, or key itself if unknown.
func CategoryLabel(key string) string {
	if label, ok := categories[key]; ok {
		return label
	}
	return key
}

// CategoryKeys returns every category key in sorted order.
func CategoryKeys() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
