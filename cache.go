package spydoweb

import (
	"context"
	"sync"
	"time"

	"github.com/blackkspydo/spydo-web/feed"
)

// PostCache is an in-memory TTL cache of the post list in front of a
// PostSource. Bodies are not cached; GetPostContent goes to the source.
type PostCache struct {
	mu      sync.RWMutex
	posts   []feed.Post
	fetched time.Time
	ttl     time.Duration
	src     PostSource
}

// NewPostCache creates a PostCache backed by src.
func NewPostCache(src PostSource, ttl time.Duration) *PostCache {
	return &PostCache{src: src, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ListPosts returns the cached post list, reloading it from the source when
// stale. It tries a read lock first and only takes the write lock to reload.
func (c *PostCache) ListPosts(ctx context.Context) ([]feed.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.src.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []feed.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return posts, nil
}

// GetPostContent delegates to the underlying source.
func (c *PostCache) GetPostContent(ctx context.Context, slug string) (string, error) {
	return c.src.GetPostContent(ctx, slug)
}
