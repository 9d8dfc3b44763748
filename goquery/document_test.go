package goquery_test

import (
	"testing"

	"github.com/fwojciec/faleproxy/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("infers implicit html, head and body", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<title>Test</title><p>Hello`)
		require.NoError(t, err)

		assert.Equal(t, 1, doc.Find("html").Length())
		assert.Equal(t, 1, doc.Find("head > title").Length())
		assert.Equal(t, "Hello", doc.Find("body > p").Text())
	})

	t.Run("recovers from unclosed tags", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<div><p>one<p>two<span>three`)
		require.NoError(t, err)

		assert.Equal(t, 2, doc.Find("p").Length())
		assert.Equal(t, "three", doc.Find("span").Text())
	})

	t.Run("accepts empty input", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse("")
		require.NoError(t, err)

		assert.Equal(t, 1, doc.Find("body").Length())
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("reflects mutations", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head></head><body><p>before</p></body></html>`)
		require.NoError(t, err)

		doc.Find("p").SetText("after")

		out, err := goquery.Render(doc)
		require.NoError(t, err)
		assert.Equal(t, `<html><head></head><body><p>after</p></body></html>`, out)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<!DOCTYPE html><html lang="en"><body><a href="/x" class="c">x</a><!-- note --></body></html>`)
		require.NoError(t, err)

		first, err := goquery.Render(doc)
		require.NoError(t, err)
		second, err := goquery.Render(doc)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Contains(t, first, "<!DOCTYPE html>")
		assert.Contains(t, first, "<!-- note -->")
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	t.Run("returns first title element", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head><title>Main</title></head><body><svg><title>Icon</title></svg></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "Main", goquery.Title(doc).Text())
	})

	t.Run("ignores svg titles", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head></head><body><svg><title>Yale logo</title></svg></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, 0, goquery.Title(doc).Length())
	})

	t.Run("skips svg titles before the document title", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<svg><title>Icon</title></svg><title>Main</title>`)
		require.NoError(t, err)

		assert.Equal(t, "Main", goquery.Title(doc).Text())
	})

	t.Run("returns empty selection without title", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<p>no title</p>`)
		require.NoError(t, err)

		assert.Equal(t, 0, goquery.Title(doc).Length())
	})
}

func TestBody(t *testing.T) {
	t.Parallel()

	t.Run("returns body element", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<p>text</p>`)
		require.NoError(t, err)

		roots := goquery.Body(doc)
		require.Len(t, roots, 1)
		assert.Equal(t, html.ElementNode, roots[0].Type)
		assert.Equal(t, "body", roots[0].Data)
	})

	t.Run("falls back to document for frameset pages", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head><title>t</title></head><frameset><frame src="a.html"></frameset></html>`)
		require.NoError(t, err)

		roots := goquery.Body(doc)
		require.Len(t, roots, 1)
		assert.Equal(t, html.DocumentNode, roots[0].Type)
	})
}
