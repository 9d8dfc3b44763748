package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/faleproxy"
	"github.com/fwojciec/faleproxy/proxy"
	"golang.org/x/sync/errgroup"
)

// fetchOutcome holds the result of fetching a single URL.
type fetchOutcome struct {
	url    string
	result *faleproxy.ProxyResult
	err    error
}

// Run executes the fetch command. Pages are fetched concurrently and
// printed in argument order. A failed page does not stop the others.
func (c *FetchCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	outcomes := make([]fetchOutcome, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			result, err := deps.Proxy.Fetch(deps.Ctx, url)
			outcomes[i] = fetchOutcome{url: url, result: result, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.url, faleproxy.ErrorMessage(o.err))
			continue
		}
		if err := c.print(deps, o, len(outcomes) > 1); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(outcomes))
	}
	return nil
}

// print writes one page in the selected format.
func (c *FetchCmd) print(deps *Dependencies, o fetchOutcome, multiple bool) error {
	r := o.result

	if c.Title {
		if multiple {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", o.url, r.Title)
		} else {
			fmt.Fprintln(deps.Stdout, r.Title)
		}
		return nil
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case "markdown":
		md, err := deps.Converter.Convert(r.Content, r.OriginalURL)
		if err != nil {
			return fmt.Errorf("converting %s: %w", o.url, err)
		}
		c.header(deps, o, multiple)
		fmt.Fprintln(deps.Stdout, md)
	default:
		c.header(deps, o, multiple)
		fmt.Fprintln(deps.Stdout, r.Content)
	}

	deps.Logger.Debug("page written",
		"url", o.url,
		"size", proxy.FormatBytes(len(r.Content)),
		"hash", r.Hash,
	)
	return nil
}

// header separates pages when more than one URL was given.
func (c *FetchCmd) header(deps *Dependencies, o fetchOutcome, multiple bool) {
	if multiple {
		fmt.Fprintf(deps.Stdout, "==> %s <==\n", o.url)
	}
}
