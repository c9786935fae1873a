package spydoweb

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blackkspydo/spydo-web/feed"
	"github.com/blackkspydo/spydo-web/site"
)

const (
	mimeTextPlain = "text/plain; charset=utf-8"
	mimeRSS       = "application/rss+xml; charset=utf-8"

	postNotFoundBody = "Post not found"
)

func (a *App) handleLLMsIndex(c echo.Context) error {
	posts, err := a.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	body := feed.Index(a.Config.Name, a.Config.Description, a.Config.URL, posts)
	return c.Blob(http.StatusOK, mimeTextPlain, []byte(body))
}

func (a *App) handlePostLLMs(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	posts, err := a.posts.ListPosts(ctx)
	if err != nil {
		return err
	}
	post, ok := findPost(posts, slug)
	if !ok || post.Draft {
		return c.Blob(http.StatusNotFound, mimeTextPlain, []byte(postNotFoundBody))
	}
	content, err := a.posts.GetPostContent(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return c.Blob(http.StatusNotFound, mimeTextPlain, []byte(postNotFoundBody))
	}
	if err != nil {
		return err
	}
	body := feed.PostText(a.Config.URL, post, content)
	return c.Blob(http.StatusOK, mimeTextPlain, []byte(body))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	out, err := feed.Sitemap(a.Config.URL, a.Config.StaticPages, posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXML, out)
}

func (a *App) handleRSS(c echo.Context) error {
	posts, err := a.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	ch := feed.Channel{
		Title:       a.Config.Name,
		Link:        a.Config.URL,
		Description: a.Config.Description,
	}
	out, err := feed.RSS(ch, posts, site.CategoryLabel)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeRSS, out)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %ssitemap.xml\n", a.Config.URL)
	return c.Blob(http.StatusOK, mimeTextPlain, []byte(body))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.Blob(code, mimeTextPlain, []byte(http.StatusText(code)))
}
