package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/faleproxy"
)

// Ensure LoggingSubstituter implements faleproxy.Substituter.
var _ faleproxy.Substituter = (*LoggingSubstituter)(nil)

// LoggingSubstituter wraps a Substituter with debug logging.
type LoggingSubstituter struct {
	next   faleproxy.Substituter
	logger *slog.Logger
}

// NewLoggingSubstituter creates a new LoggingSubstituter.
func NewLoggingSubstituter(next faleproxy.Substituter, logger *slog.Logger) *LoggingSubstituter {
	return &LoggingSubstituter{next: next, logger: logger}
}

// Substitute delegates to the wrapped substituter and logs sizes and timing.
func (s *LoggingSubstituter) Substitute(html string) (result *faleproxy.SubstituteResult, err error) {
	defer func(begin time.Time) {
		out := 0
		if result != nil {
			out = len(result.ContentHTML)
		}
		s.logger.Debug("substitute",
			"in_bytes", len(html),
			"out_bytes", out,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Substitute(html)
}
