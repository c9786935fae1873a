package spydoweb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackkspydo/spydo-web/feed"
)

func TestEntriesExcludeDrafts(t *testing.T) {
	app := newTestApp(t, defaultSource())

	slugs, err := app.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, slugs)
}

func TestPrerender(t *testing.T) {
	app := newTestApp(t, defaultSource())
	out := t.TempDir()

	files, err := app.Prerender(context.Background(), out)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(out, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	assert.Equal(t, []string{"a/llms.txt", "c/llms.txt", "llms.txt", "robots.txt", "rss.xml", "sitemap.xml"}, rel)

	_, err = os.Stat(filepath.Join(out, "b", "llms.txt"))
	assert.True(t, os.IsNotExist(err), "draft post must not be prerendered")

	got, err := os.ReadFile(filepath.Join(out, "a", "llms.txt"))
	require.NoError(t, err)
	assert.Equal(t, doGet(app, "/a/llms.txt").Body.String(), string(got))

	index, err := os.ReadFile(filepath.Join(out, "llms.txt"))
	require.NoError(t, err)
	assert.Equal(t, feed.Index(app.Config.Name, app.Config.Description, app.Config.URL, testPosts()), string(index))
}

func TestPrerenderIgnoresRateLimit(t *testing.T) {
	app := newTestApp(t, defaultSource(), func(c *SiteConfig) {
		c.RateLimit = 1
	})

	_, err := app.Prerender(context.Background(), t.TempDir())
	require.NoError(t, err)
}

func TestPrerenderFailsOnBadDate(t *testing.T) {
	src := &fakeSource{
		posts:   []feed.Post{{Slug: "x", Title: "X", Published: "garbage"}},
		content: map[string]string{"x": "body"},
	}
	app := newTestApp(t, src)

	_, err := app.Prerender(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Regexp(t, `/(sitemap|rss)\.xml`, err.Error())
}

func TestPrerenderRejectsEscapingSlug(t *testing.T) {
	src := &fakeSource{
		posts:   []feed.Post{{Slug: "..", Title: "X", Published: "2024-01-01"}},
		content: map[string]string{"..": "body"},
	}
	app := newTestApp(t, src)

	_, err := app.Prerender(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestPrerenderUpstreamFailure(t *testing.T) {
	boom := errors.New("source offline")
	app := newTestApp(t, &fakeSource{listErr: boom})

	_, err := app.Prerender(context.Background(), t.TempDir())
	require.ErrorIs(t, err, boom)
}
