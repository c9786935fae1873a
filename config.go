package spydoweb

import (
	"strings"
	"time"

	"github.com/blackkspydo/spydo-web/feed"
	"github.com/blackkspydo/spydo-web/site"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default site.Name)
	URL         string // Canonical URL, always ending in "/" (default site.URL)
	Description string // Site description for llms.txt and RSS

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/posts.db")

	PostCacheTTL time.Duration // Post cache TTL (default 5min, negative disables)

	RateLimit       int           // Feed requests per IP per window, 0 disables
	RateLimitWindow time.Duration // default 1min

	StaticPages []feed.StaticPage // Sitemap pages (default feed.DefaultStaticPages)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = site.Name
	}
	if c.URL == "" {
		c.URL = site.URL
	}
	if !strings.HasSuffix(c.URL, "/") {
		c.URL += "/"
	}
	if c.Description == "" {
		c.Description = site.Description
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/posts.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.RateLimitWindow == 0 {
		c.RateLimitWindow = time.Minute
	}
	if c.StaticPages == nil {
		c.StaticPages = feed.DefaultStaticPages
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithPostSource makes the App read posts from src instead of opening the
// SQLite store at DatabasePath.
func WithPostSource(src PostSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
