package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/faleproxy"
	"github.com/fwojciec/faleproxy/goquery"
	"github.com/fwojciec/faleproxy/htmltomarkdown"
	fphttp "github.com/fwojciec/faleproxy/http"
	"github.com/fwojciec/faleproxy/proxy"
	"github.com/fwojciec/faleproxy/rod"
	fpslog "github.com/fwojciec/faleproxy/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher built from flags. Set before calling Run().
	Fetcher faleproxy.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("faleproxy"),
		kong.Description("Fetch web pages and rewrite a term in their visible text, preserving its case"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'faleproxy --help' to see available commands")
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

	rule := faleproxy.Rule{Term: cli.Term, Replacement: cli.Replacement}
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %s", faleproxy.ErrorMessage(err))
	}
	deps.Rule = rule

	deps.Logger = newLogger(stderr, cli.logLevel(kongCtx.Command()))

	fetcher := m.Fetcher
	if fetcher == nil {
		if fetcher, err = newFetcher(cli); err != nil {
			return err
		}
	}
	defer fetcher.Close()

	if cli.Retries > 0 {
		fetcher = proxy.NewRetryFetcher(fetcher, proxy.RetryDelays(cli.Retries), deps.Logger)
	}
	fetcher = fpslog.NewLoggingFetcher(fetcher, deps.Logger)

	var opts []goquery.Option
	if cli.SkipScripts {
		opts = append(opts, goquery.WithSkipElements("script", "style"))
	}
	substituter := fpslog.NewLoggingSubstituter(goquery.NewSubstituter(rule, opts...), deps.Logger)

	svc := &proxy.Service{
		Fetcher:     fetcher,
		Substituter: substituter,
	}
	if cli.RPS > 0 {
		svc.RateLimiter = proxy.NewDomainLimiter(cli.RPS, cli.Burst)
	}

	deps.Proxy = fpslog.NewLoggingProxyService(svc, deps.Logger)
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}

// newFetcher builds the plain HTTP fetcher, or a headless browser when
// --browser is set.
func newFetcher(cli *CLI) (faleproxy.Fetcher, error) {
	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}
	return fphttp.NewFetcher(
		fphttp.WithTimeout(cli.Timeout),
		fphttp.WithMaxBytes(cli.MaxBytes),
		fphttp.WithUserAgent(cli.UserAgent),
	), nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
