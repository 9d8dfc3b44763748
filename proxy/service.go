// Package proxy coordinates fetching remote pages and rewriting them.
package proxy

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/faleproxy"
)

// Ensure Service implements faleproxy.ProxyService at compile time.
var _ faleproxy.ProxyService = (*Service)(nil)

// Service fetches a page, applies the substitution and returns the result.
// RateLimiter is optional; when set, fetches are throttled per host.
type Service struct {
	Fetcher     faleproxy.Fetcher
	Substituter faleproxy.Substituter
	RateLimiter faleproxy.DomainLimiter
}

// Fetch validates rawURL, retrieves the page and rewrites it.
// Validation happens before any network access.
func (s *Service) Fetch(ctx context.Context, rawURL string) (*faleproxy.ProxyResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, faleproxy.Errorf(faleproxy.EFETCH, "%v", err)
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, faleproxy.Errorf(faleproxy.EFETCH, "%v", err)
	}

	result, err := s.Substituter.Substitute(html)
	if err != nil {
		return nil, err
	}

	return &faleproxy.ProxyResult{
		Success:     true,
		Content:     result.ContentHTML,
		Title:       result.Title,
		OriginalURL: rawURL,
		Hash:        ComputeHash(result.ContentHTML),
	}, nil
}

// ValidateURL parses rawURL and checks that it is an absolute http(s) URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, faleproxy.Errorf(faleproxy.EINVALID, "URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, faleproxy.Errorf(faleproxy.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, faleproxy.Errorf(faleproxy.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, faleproxy.Errorf(faleproxy.EINVALID, "URL host required")
	}
	return u, nil
}
