package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/leanscrap"
	"github.com/fwojciec/leanscrap/fs"
	"github.com/fwojciec/leanscrap/goquery"
	lshttp "github.com/fwojciec/leanscrap/http"
	lsprom "github.com/fwojciec/leanscrap/prometheus"
	"github.com/fwojciec/leanscrap/rod"
	"github.com/fwojciec/leanscrap/scrape"
	lsslog "github.com/fwojciec/leanscrap/slog"
	"github.com/fwojciec/leanscrap/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened only by commands that need the archive.
	DB *sqlite.DB

	// Source used by the scraper; closed with Main.
	Source leanscrap.DocumentSource
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the database and the document source.
func (m *Main) Close() error {
	var err error
	if m.Source != nil {
		err = m.Source.Close()
	}
	if m.DB != nil {
		if dbErr := m.DB.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		NewWriter: func(dir string) leanscrap.ArticleWriter { return fs.NewWriter(dir) },
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leanscrap"),
		kong.Description("Scrape and archive lean.org article metadata."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leanscrap --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(firstNonEmpty(cli.Config, defaultConfigPath()))
	if err != nil {
		return err
	}
	cfg.Apply(cli)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()

	cmd := strings.Fields(kongCtx.Command())[0]

	needsArchive := cmd != "scrape" || cli.Scrape.Save
	if needsArchive {
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		deps.Articles = lsslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), deps.Logger)
	}

	switch cmd {
	case "scrape":
		if deps.Scraper, err = m.newScraper(cli.Scrape.FetchFlags, deps.Logger, nil, stderr); err != nil {
			return err
		}
	case "serve":
		metrics := lsprom.NewMetrics()
		deps.Metrics = metrics.Handler()
		if deps.Scraper, err = m.newScraper(cli.Serve.FetchFlags, deps.Logger, metrics, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set LEANSCRAP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newScraper builds the scraping pipeline. Metrics may be nil.
func (m *Main) newScraper(flags FetchFlags, logger *slog.Logger, metrics *lsprom.Metrics, stderr io.Writer) (leanscrap.ArticleScraper, error) {
	var source leanscrap.DocumentSource
	if flags.Browser {
		var opts []rod.Option
		if flags.Timeout > 0 {
			opts = append(opts, rod.WithFetchTimeout(flags.Timeout))
		}
		s, err := rod.NewSource(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		source = s
	} else {
		var opts []lshttp.Option
		if flags.Timeout > 0 {
			opts = append(opts, lshttp.WithTimeout(flags.Timeout))
		}
		if flags.UserAgent != "" {
			opts = append(opts, lshttp.WithUserAgent(flags.UserAgent))
		}
		source = lshttp.NewSource(opts...)
	}
	m.Source = source

	if metrics != nil {
		source = lsprom.NewSource(source, metrics)
	}
	source = lsslog.NewLoggingSource(source, logger)

	var scraper leanscrap.ArticleScraper = &scrape.Scraper{
		Source:    source,
		Parser:    goquery.NewParser(),
		Extractor: scrape.NewExtractor(),
	}
	if metrics != nil {
		scraper = lsprom.NewScraper(scraper, metrics)
	}
	return lsslog.NewLoggingScraper(scraper, logger), nil
}
