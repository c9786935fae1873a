package spydoweb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackkspydo/spydo-web/feed"
)

// fakeSource is an in-memory PostSource that counts list calls.
type fakeSource struct {
	mu         sync.Mutex
	posts      []feed.Post
	content    map[string]string
	listErr    error
	contentErr error
	listCalls  atomic.Int32
}

func (f *fakeSource) ListPosts(ctx context.Context) ([]feed.Post, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]feed.Post(nil), f.posts...), nil
}

func (f *fakeSource) GetPostContent(ctx context.Context, slug string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contentErr != nil {
		return "", f.contentErr
	}
	c, ok := f.content[slug]
	if !ok {
		return "", ErrNotFound
	}
	return c, nil
}

func (f *fakeSource) setPosts(posts []feed.Post) {
	f.mu.Lock()
	f.posts = posts
	f.mu.Unlock()
}

func TestPostCacheServesFromCache(t *testing.T) {
	src := &fakeSource{posts: []feed.Post{{Slug: "a"}}}
	c := NewPostCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		posts, err := c.ListPosts(ctx)
		if err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
		if len(posts) != 1 {
			t.Fatalf("len(posts) = %d, want 1", len(posts))
		}
	}
	if n := src.listCalls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestPostCacheInvalidate(t *testing.T) {
	src := &fakeSource{posts: []feed.Post{{Slug: "a"}}}
	c := NewPostCache(src, time.Hour)
	ctx := context.Background()

	if _, err := c.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	src.setPosts([]feed.Post{{Slug: "a"}, {Slug: "b"}})
	c.Invalidate()

	posts, err := c.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("after Invalidate got %d posts, want 2", len(posts))
	}
}

func TestPostCacheExpires(t *testing.T) {
	src := &fakeSource{posts: []feed.Post{{Slug: "a"}}}
	c := NewPostCache(src, 50*time.Millisecond)
	ctx := context.Background()

	if _, err := c.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := c.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if n := src.listCalls.Load(); n != 2 {
		t.Errorf("source called %d times, want 2", n)
	}
}

func TestPostCacheEmptyListIsCached(t *testing.T) {
	src := &fakeSource{}
	c := NewPostCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := c.ListPosts(ctx); err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
	}
	if n := src.listCalls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestPostCachePropagatesErrors(t *testing.T) {
	boom := errors.New("upstream down")
	src := &fakeSource{listErr: boom}
	c := NewPostCache(src, time.Minute)

	if _, err := c.ListPosts(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("ListPosts err = %v, want %v", err, boom)
	}
	// a failed load must not be cached
	src.mu.Lock()
	src.listErr = nil
	src.mu.Unlock()
	if _, err := c.ListPosts(context.Background()); err != nil {
		t.Fatalf("ListPosts after recovery: %v", err)
	}
}

func TestPostCacheConcurrentReaders(t *testing.T) {
	src := &fakeSource{posts: []feed.Post{{Slug: "a"}}}
	c := NewPostCache(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ListPosts(context.Background()); err != nil {
				t.Errorf("ListPosts: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := src.listCalls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}
