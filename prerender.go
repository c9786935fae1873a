package spydoweb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/blackkspydo/spydo-web/feed"
)

const prerenderParallelism = 8

type prerenderKey struct{}

func isPrerender(ctx context.Context) bool {
	v, _ := ctx.Value(prerenderKey{}).(bool)
	return v
}

// Entries returns the slugs of every non-draft post: the path parameters of
// /:slug/llms.txt that exist at build time.
func (a *App) Entries(ctx context.Context) ([]string, error) {
	if err := a.Setup(); err != nil {
		return nil, err
	}
	posts, err := a.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Slugs(posts), nil
}

type prerenderRoute struct {
	path string // request path
	file string // output file, relative to the output directory
}

// Prerender renders every feed route through the router and writes the
// bodies under outDir, mirroring the URL layout. It returns the files
// written. Any non-200 response aborts the build.
func (a *App) Prerender(ctx context.Context, outDir string) ([]string, error) {
	slugs, err := a.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("prerender: entries: %w", err)
	}

	routes := []prerenderRoute{
		{path: "/llms.txt", file: "llms.txt"},
		{path: "/sitemap.xml", file: "sitemap.xml"},
		{path: "/rss.xml", file: "rss.xml"},
		{path: "/robots.txt", file: "robots.txt"},
	}
	for _, slug := range slugs {
		if !filepath.IsLocal(slug) {
			return nil, fmt.Errorf("prerender: slug %q escapes the output directory", slug)
		}
		routes = append(routes, prerenderRoute{
			path: "/" + url.PathEscape(slug) + "/llms.txt",
			file: filepath.Join(slug, "llms.txt"),
		})
	}

	ctx = context.WithValue(ctx, prerenderKey{}, true)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prerenderParallelism)
	for _, r := range routes {
		r := r
		g.Go(func() error {
			return a.prerenderRoute(gctx, outDir, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]string, len(routes))
	for i, r := range routes {
		files[i] = filepath.Join(outDir, r.file)
	}
	a.Echo.Logger.Infof("prerender: wrote %d files to %s", len(files), outDir)
	return files, nil
}

func (a *App) prerenderRoute(ctx context.Context, outDir string, r prerenderRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := httptest.NewRequest(http.MethodGet, r.path, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return fmt.Errorf("prerender %s: status %d: %s", r.path, rec.Code, rec.Body.String())
	}

	dst := filepath.Join(outDir, r.file)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("prerender %s: %w", r.path, err)
	}
	if err := os.WriteFile(dst, rec.Body.Bytes(), 0o644); err != nil {
		return fmt.Errorf("prerender %s: %w", r.path, err)
	}
	a.Echo.Logger.Debugf("prerender: %s -> %s", r.path, dst)
	return nil
}
