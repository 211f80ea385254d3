package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/crawl"
	"github.com/fwojciec/pagemedia/goquery"
	"github.com/fwojciec/pagemedia/htmltomarkdown"
	pmhttp "github.com/fwojciec/pagemedia/http"
	pmslog "github.com/fwojciec/pagemedia/slog"
	"github.com/fwojciec/pagemedia/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by "extract -". Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageMediaService pagemedia.PageMediaService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemedia"),
		kong.Description("Extract media lists from server-rendered wiki articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemedia --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if sel := kongCtx.Selected(); sel != nil {
		cmd = sel.Name
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	extractor := goquery.NewExtractor()
	extractor.Images = &goquery.DefaultImagePolicy{
		MinSize:           cli.MinSize,
		MaxWidth:          cli.MaxWidth,
		DisallowedClasses: goquery.DefaultDisallowedClasses,
	}
	extractor.KeepDuplicates = cmd == "extract" && cli.Extract.Raw
	deps.Extractor = extractor

	if cli.MetadataEndpoint != "" {
		deps.Metadata = pmhttp.NewMetadataService(cli.MetadataEndpoint,
			pmhttp.WithRequestTimeout(cli.Timeout),
		)
	}

	if logger != nil {
		extractor.OnSkip = pmslog.SkipLogger(logger)
		deps.Extractor = pmslog.NewLoggingExtractor(extractor, logger)
		if deps.Metadata != nil {
			deps.Metadata = pmslog.NewLoggingMetadataService(deps.Metadata, logger)
		}
	}

	// extract works on local input only.
	if cmd == "extract" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEMEDIA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PageMediaService = sqlite.NewPageMediaService(m.DB)
	deps.DB = m.DB
	deps.PageMedia = m.PageMediaService

	if cmd == "show" {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "fetch" {
		var fetcher pagemedia.Fetcher = pmhttp.NewFetcher(pmhttp.WithTimeout(cli.Timeout))
		if logger != nil {
			fetcher = pmslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   deps.Extractor,
			Metadata:    deps.Metadata,
			Cache:       m.PageMediaService,
			Limiter:     crawl.NewHostLimiter(cli.RequestsPerSecond),
			BaseURL:     cli.Endpoint,
			Concurrency: cli.Fetch.Concurrency,
		}
		if logger != nil {
			deps.Crawler.RetryLog = func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			}
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEMEDIA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemedia.db"
	}
	dir := filepath.Join(home, ".pagemedia")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagemedia.db")
}
