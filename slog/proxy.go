package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faleproxy"
)

// Ensure LoggingProxyService implements faleproxy.ProxyService.
var _ faleproxy.ProxyService = (*LoggingProxyService)(nil)

// LoggingProxyService wraps a ProxyService with logging.
type LoggingProxyService struct {
	next   faleproxy.ProxyService
	logger *slog.Logger
}

// NewLoggingProxyService creates a new LoggingProxyService.
func NewLoggingProxyService(next faleproxy.ProxyService, logger *slog.Logger) *LoggingProxyService {
	return &LoggingProxyService{next: next, logger: logger}
}

// Fetch delegates to the wrapped service and logs the outcome.
// Validation failures are logged at warn level, everything else at info
// or error.
func (s *LoggingProxyService) Fetch(ctx context.Context, url string) (result *faleproxy.ProxyResult, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		switch faleproxy.ErrorCode(err) {
		case "":
		case faleproxy.EINVALID:
			level = slog.LevelWarn
		default:
			level = slog.LevelError
		}
		title := ""
		if result != nil {
			title = result.Title
		}
		s.logger.Log(ctx, level, "proxy fetch",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, url)
}
