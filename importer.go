package spydoweb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blackkspydo/spydo-web/feed"
	"github.com/blackkspydo/spydo-web/site"
)

// Manifest is a YAML list of posts used to seed the store.
//
//	posts:
//	  - slug: git-rebase-basics
//	    title: Git Rebase Basics
//	    description: Rewrite history without fear.
//	    published: "2024-03-01"
//	    category: git
//	    content_file: posts/git-rebase-basics.md
type Manifest struct {
	Posts []ManifestPost `yaml:"posts"`

	dir string // directory content_file paths are relative to
}

// ManifestPost is one post entry. Content and ContentFile are exclusive.
type ManifestPost struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Published   string `yaml:"published"`
	Category    string `yaml:"category"`
	Draft       bool   `yaml:"draft"`
	Content     string `yaml:"content"`
	ContentFile string `yaml:"content_file"`
}

// Post converts the entry to a feed.Post.
func (mp ManifestPost) Post() feed.Post {
	return feed.Post{
		Slug:        mp.Slug,
		Title:       mp.Title,
		Description: mp.Description,
		Published:   mp.Published,
		Category:    mp.Category,
		Draft:       mp.Draft,
	}
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// Validate reports every problem in the manifest at once.
func (m *Manifest) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(m.Posts))
	for i, p := range m.Posts {
		where := fmt.Sprintf("posts[%d]", i)
		if p.Slug != "" {
			where += " (" + p.Slug + ")"
		}
		if !ValidSlug(p.Slug) {
			errs = append(errs, fmt.Errorf("%s: invalid slug %q", where, p.Slug))
		}
		if _, dup := seen[p.Slug]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate slug", where))
		}
		seen[p.Slug] = struct{}{}
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("%s: missing title", where))
		}
		if !site.IsCategory(p.Category) {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", where, p.Category))
		}
		if _, err := feed.ParseDate(p.Published); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid published date %q: %w", where, p.Published, err))
		}
		if p.Content != "" && p.ContentFile != "" {
			errs = append(errs, fmt.Errorf("%s: content and content_file are exclusive", where))
		}
	}
	return errors.Join(errs...)
}

// Body returns the post body, reading content_file if set.
func (m *Manifest) Body(p ManifestPost) (string, error) {
	if p.ContentFile == "" {
		return p.Content, nil
	}
	path := p.ContentFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("post %q: read content: %w", p.Slug, err)
	}
	return string(data), nil
}

// Import validates the manifest and upserts every post into store. It
// returns the number of posts saved.
func Import(ctx context.Context, store *Store, m *Manifest) (int, error) {
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("invalid manifest: %w", err)
	}
	bodies := make([]string, len(m.Posts))
	for i, p := range m.Posts {
		body, err := m.Body(p)
		if err != nil {
			return 0, err
		}
		bodies[i] = body
	}
	for i, p := range m.Posts {
		if err := store.SavePost(ctx, p.Post(), bodies[i]); err != nil {
			return i, err
		}
	}
	return len(m.Posts), nil
}
