package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Channel describes the feed as a whole.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// RSS renders an RSS 2.0 document of the non-draft posts. label maps a
// category key to its display name; it may be nil.
func RSS(ch Channel, posts []Post, label func(string) string) ([]byte, error) {
	public := Public(posts)
	items := make([]rssItem, 0, len(public))
	for _, p := range public {
		t, err := publishedTime(p)
		if err != nil {
			return nil, fmt.Errorf("rss: %w", err)
		}
		category := p.Category
		if label != nil && category != "" {
			category = label(category)
		}
		postURL := ch.Link + p.Slug
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			Category:    category,
			PubDate:     t.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       ch.Title,
			Link:        ch.Link,
			Description: ch.Description,
			Items:       items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("rss: encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
