// Package htmltomarkdown renders rewritten pages as Markdown for terminal output.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/faleproxy"
	"github.com/fwojciec/faleproxy/goquery"
)

var _ faleproxy.Converter = (*Converter)(nil)

// Converter turns a page into a Markdown document headed by its title.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders the page body as Markdown. A non-empty title becomes a
// leading level-one heading.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", faleproxy.Errorf(faleproxy.EINVALID, "empty HTML input")
	}

	doc, err := goquery.Parse(html)
	if err != nil {
		return "", err
	}

	var opts []converter.ConvertOptionFunc
	if pageURL != "" {
		opts = append(opts, converter.WithDomain(pageURL))
	}

	var parts []string
	if title := strings.Join(strings.Fields(goquery.Title(doc).Text()), " "); title != "" {
		parts = append(parts, "# "+title)
	}
	for _, n := range goquery.Body(doc) {
		md, err := c.conv.ConvertNode(n, opts...)
		if err != nil {
			return "", faleproxy.Errorf(faleproxy.EINTERNAL, "failed to convert HTML: %v", err)
		}
		if s := strings.TrimSpace(string(md)); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
