package feed

import "strings"

// PostText renders the llms.txt document for a single post. The layout is
// fixed; content is appended verbatim after the separator.
func PostText(siteURL string, post Post, content string) string {
	return strings.Join([]string{
		"# " + post.Title,
		"",
		"> " + post.Description,
		"",
		"Published: " + post.Published,
		"Category: " + post.Category,
		"URL: " + siteURL + post.Slug,
		"",
		"---",
		"",
		content,
	}, "\n")
}

// Index renders the site-wide llms.txt: a header followed by one link line
// per non-draft post, in the order given.
func Index(name, description, siteURL string, posts []Post) string {
	lines := []string{
		"# " + name,
		"> " + description,
		"",
		"URL: " + siteURL,
		"",
		"## Posts",
		"",
	}
	for _, p := range Public(posts) {
		lines = append(lines, "- ["+p.Title+"]("+siteURL+p.Slug+"/llms.txt) - "+p.Published+": "+p.Description)
	}
	return strings.Join(lines, "\n")
}
