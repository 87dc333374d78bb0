package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/leanscrap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Scraper  leanscrap.ArticleScraper
	Articles leanscrap.ArticleService
	Metrics  http.Handler

	// NewWriter returns the export target for a directory.
	NewWriter func(dir string) leanscrap.ArticleWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Article database path (default ~/.leanscrap/leanscrap.db)" env:"LEANSCRAP_DB"`
	Config  string `help:"YAML config file (default ~/.leanscrap/config.yaml)" env:"LEANSCRAP_CONFIG"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape article metadata from one or more URLs"`
	List   ListCmd   `cmd:"" help:"List archived articles"`
	Show   ShowCmd   `cmd:"" help:"Show an archived article"`
	Delete DeleteCmd `cmd:"" help:"Delete an archived article"`
	Export ExportCmd `cmd:"" help:"Export archived articles as Markdown"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API"`
}

// FetchFlags configure how pages are retrieved. Zero values fall back to the
// config file and then to built-in defaults.
type FetchFlags struct {
	Browser   bool          `help:"Render pages in headless Chrome"`
	Timeout   time.Duration `help:"Fetch timeout (default 10s)"`
	UserAgent string        `name:"user-agent" help:"User-Agent header for plain HTTP fetches"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	JSON        bool     `help:"Print one JSON document per article"`
	Save        bool     `help:"Store scraped articles in the archive"`
	Concurrency int      `short:"c" help:"Concurrent scrapes (default 4)"`

	FetchFlags `embed:""`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Author string `help:"Only articles by this author"`
	Limit  int    `default:"20" help:"Maximum number of articles"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL  string `arg:"" help:"Article URL"`
	JSON bool   `help:"Print as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Article URL"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (default :8080)"`

	FetchFlags `embed:""`
}
