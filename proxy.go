package faleproxy

import "context"

// ProxyResult is the outcome of fetching and rewriting a remote page.
type ProxyResult struct {
	Success     bool   `json:"success"`
	Content     string `json:"content"`
	Title       string `json:"title"`
	OriginalURL string `json:"originalUrl"`

	// Hash is a hash of Content, suitable for use as an ETag.
	Hash string `json:"-"`
}

// ProxyService fetches remote pages and rewrites them.
type ProxyService interface {
	// Fetch retrieves the page at url and returns the rewritten document.
	// Returns EINVALID if url is empty or not an http(s) URL, and EFETCH
	// if the page could not be retrieved.
	Fetch(ctx context.Context, url string) (*ProxyResult, error)
}
