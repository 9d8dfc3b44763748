package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/faleproxy"
	"golang.org/x/net/html"
)

// Ensure Substituter implements faleproxy.Substituter at compile time.
var _ faleproxy.Substituter = (*Substituter)(nil)

// Substituter rewrites text nodes under the document body and the
// document title according to a faleproxy.Rule. Attribute values, tag
// names and comments are never modified.
//
// A Substituter holds no per-document state and is safe for concurrent
// use, provided each call operates on its own document tree.
type Substituter struct {
	replacer *strings.Replacer
	skip     map[string]bool
}

// Option configures a Substituter.
type Option func(*Substituter)

// WithSkipElements excludes the text content of the named elements (and
// their descendants) from substitution, e.g. "script" and "style".
// By default every text node under the body is eligible.
func WithSkipElements(tags ...string) Option {
	return func(s *Substituter) {
		for _, tag := range tags {
			s.skip[strings.ToLower(tag)] = true
		}
	}
}

// NewSubstituter creates a Substituter for the given rule.
func NewSubstituter(rule faleproxy.Rule, opts ...Option) *Substituter {
	s := &Substituter{
		replacer: rule.Replacer(),
		skip:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Substitute parses html, applies the rule and serializes the result.
func (s *Substituter) Substitute(html string) (*faleproxy.SubstituteResult, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}

	title := s.Apply(doc)

	out, err := Render(doc)
	if err != nil {
		return nil, err
	}

	return &faleproxy.SubstituteResult{
		Title:       title,
		ContentHTML: out,
	}, nil
}

// Apply rewrites doc in place and returns the substituted title text.
// A document without a title yields an empty title.
func (s *Substituter) Apply(doc *goquery.Document) string {
	// Collect first, then mutate, so the walk never sees its own edits.
	var texts []*html.Node
	for _, root := range Body(doc) {
		texts = s.collectText(root, texts)
	}

	for _, n := range texts {
		if replaced := s.replacer.Replace(n.Data); replaced != n.Data {
			n.Data = replaced
		}
	}

	sel := Title(doc)
	if sel.Length() == 0 {
		return ""
	}
	original := sel.Text()
	title := s.replacer.Replace(original)
	if title != original {
		sel.SetText(title)
	}
	return title
}

// nodeKind is the closed set of node kinds the walk distinguishes.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindElement
	kindText
	kindComment
)

func classify(n *html.Node) nodeKind {
	switch n.Type {
	case html.ElementNode:
		return kindElement
	case html.TextNode:
		return kindText
	case html.CommentNode:
		return kindComment
	default:
		return kindOther
	}
}

// collectText appends the eligible text nodes under n in document order.
func (s *Substituter) collectText(n *html.Node, texts []*html.Node) []*html.Node {
	switch classify(n) {
	case kindText:
		return append(texts, n)
	case kindComment:
		return texts
	case kindElement:
		if s.skip[n.Data] {
			return texts
		}
	case kindOther:
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		texts = s.collectText(c, texts)
	}
	return texts
}
