package spydoweb

import (
	"context"
	"errors"

	"github.com/blackkspydo/spydo-web/feed"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

// PostSource supplies the post list and raw post bodies. Implementations
// own ordering: feeds render posts in the order ListPosts returns them.
type PostSource interface {
	ListPosts(ctx context.Context) ([]feed.Post, error)
	GetPostContent(ctx context.Context, slug string) (string, error)
}
