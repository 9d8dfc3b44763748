package mock

import (
	"context"

	"github.com/fwojciec/faleproxy"
)

var _ faleproxy.ProxyService = (*ProxyService)(nil)

// ProxyService is a mock implementation of faleproxy.ProxyService.
type ProxyService struct {
	FetchFn func(ctx context.Context, url string) (*faleproxy.ProxyResult, error)
}

func (s *ProxyService) Fetch(ctx context.Context, url string) (*faleproxy.ProxyResult, error) {
	return s.FetchFn(ctx, url)
}
