// Package spydoweb serves the machine-readable side of the blackkspydo blog:
// llms.txt summaries, the XML sitemap, and the RSS feed, all derived from a
// post source. The same routes can be prerendered to static files.
package spydoweb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// App wires together the post source, cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store     // nil when a PostSource was supplied with WithPostSource
	Cache  *PostCache // nil when caching is disabled

	source       PostSource
	posts        PostSource // what handlers read: Cache if enabled, else source
	limiter      *RequestLimiter
	customRoutes []func(*App)
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the post store (unless a source was supplied), then registers
// middleware and routes. It is safe to call more than once.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}

	if a.source == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("spydoweb: init store: %w", err)
		}
		a.Store = store
		a.source = store
	}

	a.posts = a.source
	if a.Config.PostCacheTTL > 0 {
		a.Cache = NewPostCache(a.source, a.Config.PostCacheTTL)
		a.posts = a.Cache
	}

	if a.Config.RateLimit > 0 {
		a.limiter = NewRequestLimiter(a.Config.RateLimit, a.Config.RateLimitWindow)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("listening on %s (site %s)", a.Config.Addr, a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	var feedMiddleware []echo.MiddlewareFunc
	if a.limiter != nil {
		feedMiddleware = append(feedMiddleware, a.limiter.Middleware())
	}

	e.GET("/llms.txt", a.handleLLMsIndex, feedMiddleware...)
	e.GET("/:slug/llms.txt", a.handlePostLLMs, feedMiddleware...)
	e.GET("/sitemap.xml", a.handleSitemap, feedMiddleware...)
	e.GET("/rss.xml", a.handleRSS, feedMiddleware...)
	e.GET("/robots.txt", a.handleRobots)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
