package faleproxy

// SubstituteResult holds a rewritten document.
type SubstituteResult struct {
	// Title is the substituted text of the document's title element.
	// Empty when the document has no title.
	Title string

	// ContentHTML is the serialized document with eligible text rewritten.
	// Attributes, tag names and comments are byte-identical to the input.
	ContentHTML string
}

// Substituter rewrites the visible text of an HTML document.
type Substituter interface {
	// Substitute parses html, rewrites body text and the title according
	// to the configured Rule and returns the serialized result.
	Substitute(html string) (*SubstituteResult, error)
}
