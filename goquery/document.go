// Package goquery implements HTML parsing, serialization and selective text
// substitution on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/faleproxy"
	"golang.org/x/net/html"
)

// Parse builds a document tree from html using HTML5 parsing rules.
// Malformed markup is recovered from: unclosed tags are closed and the
// implicit html, head and body elements are inferred.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, faleproxy.Errorf(faleproxy.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Render serializes the current state of the document tree.
func Render(doc *goquery.Document) (string, error) {
	out, err := doc.Html()
	if err != nil {
		return "", faleproxy.Errorf(faleproxy.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}

// Title returns the document's first HTML title element. Titles in foreign
// content such as SVG are ordinary text and are never the document title.
// The returned selection is empty when the document has no title.
func Title(doc *goquery.Document) *goquery.Selection {
	return doc.Find("title").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.Nodes[0].Namespace == ""
	}).First()
}

// Body returns the roots of the substitution scan: the body element, or the
// whole document when there is no body (frameset documents).
func Body(doc *goquery.Document) []*html.Node {
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body.Nodes
	}
	return doc.Nodes
}
