package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// SitemapNamespace is the XML namespace of the sitemap protocol.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

const (
	postChangeFreq = "yearly"
	postPriority   = "0.6"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders the sitemap: static pages first in declared order, then
// every non-draft post. Nothing is returned if any post date fails to parse.
func Sitemap(siteURL string, pages []StaticPage, posts []Post) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(pages)+len(posts))
	for _, page := range pages {
		if page.Priority < 0 || page.Priority > 1 {
			return nil, fmt.Errorf("sitemap: page %q: priority %v out of range", page.Path, page.Priority)
		}
		urls = append(urls, sitemapURL{
			Loc:        siteURL + page.Path,
			ChangeFreq: page.ChangeFreq,
			Priority:   strconv.FormatFloat(page.Priority, 'f', 1, 64),
		})
	}
	for _, p := range Public(posts) {
		lastMod, err := ISODate(p)
		if err != nil {
			return nil, fmt.Errorf("sitemap: %w", err)
		}
		urls = append(urls, sitemapURL{
			Loc:        siteURL + p.Slug,
			LastMod:    lastMod,
			ChangeFreq: postChangeFreq,
			Priority:   postPriority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemapURLSet{XMLNS: SitemapNamespace, URLs: urls}); err != nil {
		return nil, fmt.Errorf("sitemap: encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
