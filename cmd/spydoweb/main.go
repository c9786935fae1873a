package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/labstack/gommon/log"

	spydoweb "github.com/blackkspydo/spydo-web"
)

// version is set at build time via ldflags.
var version = "dev"

// CLI structure
var CLI struct {
	Debug       bool   `help:"Enable debug logging" env:"DEBUG"`
	SiteURL     string `help:"Canonical site URL" env:"SITE_URL"`
	SiteName    string `help:"Site name" env:"SITE_NAME"`
	Description string `help:"Site description" env:"SITE_DESCRIPTION"`
	Database    string `help:"SQLite database path" env:"DATABASE_PATH" default:"data/posts.db"`

	Serve struct {
		Addr      string        `help:"Listen address" env:"ADDR" default:":3000"`
		CacheTTL  time.Duration `help:"Post list cache TTL, negative disables" env:"POST_CACHE_TTL" default:"5m"`
		RateLimit int           `help:"Feed requests per IP per minute, 0 disables" env:"RATE_LIMIT" default:"0"`
	} `cmd:"" help:"Serve llms.txt, sitemap.xml and rss.xml over HTTP."`

	Prerender struct {
		Out string `help:"Output directory" short:"o" default:"build"`
	} `cmd:"" help:"Render every feed route to static files."`

	Import struct {
		Manifest string `help:"YAML manifest of posts" short:"m" required:"" type:"existingfile"`
	} `cmd:"" help:"Load posts from a YAML manifest into the database."`

	Version struct{} `cmd:"" help:"Print the version."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("spydoweb"),
		kong.Description("Machine-readable feeds for the blackkspydo blog."),
		kong.UsageOnError(),
	)

	cfg := spydoweb.SiteConfig{
		Name:         CLI.SiteName,
		URL:          CLI.SiteURL,
		Description:  CLI.Description,
		DatabasePath: CLI.Database,
	}

	var err error
	switch ctx.Command() {
	case "serve":
		cfg.Addr = CLI.Serve.Addr
		cfg.PostCacheTTL = CLI.Serve.CacheTTL
		cfg.RateLimit = CLI.Serve.RateLimit
		err = serve(newApp(cfg))
	case "prerender":
		// Build output must reflect the database as it is now.
		cfg.PostCacheTTL = -1
		err = prerender(newApp(cfg), CLI.Prerender.Out)
	case "import":
		err = importManifest(cfg, CLI.Import.Manifest)
	case "version":
		fmt.Printf("spydoweb %s\n", version)
	default:
		panic(ctx.Command())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg spydoweb.SiteConfig) *spydoweb.App {
	app := spydoweb.New(cfg)
	if CLI.Debug {
		app.Echo.Logger.SetLevel(log.DEBUG)
	} else {
		app.Echo.Logger.SetLevel(log.INFO)
	}
	return app
}

func serve(app *spydoweb.App) error {
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func prerender(app *spydoweb.App, out string) error {
	defer app.Close()
	files, err := app.Prerender(context.Background(), out)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func importManifest(cfg spydoweb.SiteConfig, path string) error {
	m, err := spydoweb.LoadManifest(path)
	if err != nil {
		return err
	}
	store, err := spydoweb.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := spydoweb.Import(context.Background(), store, m)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d posts into %s\n", n, cfg.DatabasePath)
	return nil
}
