package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure LoggingCompleter implements docagent.Completer.
var _ docagent.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging of each call.
// Prompt and reply text are not logged, only their sizes.
type LoggingCompleter struct {
	next   docagent.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next docagent.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, req *docagent.CompletionRequest) (reply string, err error) {
	defer func(begin time.Time) {
		promptBytes := 0
		for _, m := range req.Messages {
			promptBytes += len(m.Content)
		}
		c.logger.Debug("completion",
			"model", req.Model,
			"messages", len(req.Messages),
			"prompt_bytes", promptBytes,
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
