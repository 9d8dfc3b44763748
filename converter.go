package faleproxy

// Converter renders a rewritten page as Markdown.
type Converter interface {
	// Convert transforms an HTML page into Markdown. Relative links are
	// resolved against pageURL when it is non-empty.
	Convert(html, pageURL string) (string, error)
}
