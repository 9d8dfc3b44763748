package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/faleproxy"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Rule      faleproxy.Rule
	Proxy     faleproxy.ProxyService
	Converter faleproxy.Converter
}

// CLI defines the command-line interface structure for Kong.
// Every flag can also be set through its FALEPROXY_* environment variable.
type CLI struct {
	Term        string        `default:"Yale" env:"FALEPROXY_TERM" help:"Term to replace (matched as UPPER, Capitalized and lower)"`
	Replacement string        `default:"Fale" env:"FALEPROXY_REPLACEMENT" help:"Replacement term"`
	SkipScripts bool          `name:"skip-scripts" env:"FALEPROXY_SKIP_SCRIPTS" help:"Leave script and style contents untouched"`
	Browser     bool          `env:"FALEPROXY_BROWSER" help:"Render pages with headless Chrome before rewriting"`
	Timeout     time.Duration `default:"10s" env:"FALEPROXY_TIMEOUT" help:"Per-page fetch timeout"`
	MaxBytes    int64         `name:"max-bytes" default:"10485760" env:"FALEPROXY_MAX_BYTES" help:"Maximum size of a fetched page"`
	UserAgent   string        `name:"user-agent" default:"faleproxy/1.0" env:"FALEPROXY_USER_AGENT" help:"User-Agent header for HTTP fetches"`
	Retries     int           `default:"0" env:"FALEPROXY_RETRIES" help:"Retry failed fetches with exponential backoff"`
	RPS         float64       `name:"rps" default:"0" env:"FALEPROXY_RPS" help:"Per-host fetch rate limit in requests per second (0 disables)"`
	Burst       int           `default:"1" env:"FALEPROXY_BURST" help:"Per-host burst size when --rps is set"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	Serve ServeCmd `cmd:"" help:"Serve the rewriting proxy over HTTP"`
	Fetch FetchCmd `cmd:"" help:"Fetch and rewrite one or more pages"`
}

// logLevel returns the log level for the selected command.
// The server logs requests; one-shot fetches only log problems.
func (c *CLI) logLevel(command string) slog.Level {
	switch {
	case c.Verbose:
		return slog.LevelDebug
	case strings.HasPrefix(command, "serve"):
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":3001" env:"FALEPROXY_ADDR" help:"Listen address"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Format      string   `short:"f" default:"html" enum:"html,markdown,json" help:"Output format (html, markdown, json)"`
	Title       bool     `short:"t" help:"Print only the rewritten titles"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}
