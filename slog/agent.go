package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure LoggingAgent implements docagent.Agent.
var _ docagent.Agent = (*LoggingAgent)(nil)

// LoggingAgent wraps an Agent and logs each answered message.
type LoggingAgent struct {
	next   docagent.Agent
	logger *slog.Logger
}

// NewLoggingAgent creates a new LoggingAgent.
func NewLoggingAgent(next docagent.Agent, logger *slog.Logger) *LoggingAgent {
	return &LoggingAgent{next: next, logger: logger}
}

// Run delegates to the wrapped agent and logs the tools it invoked.
func (a *LoggingAgent) Run(ctx context.Context, instructions string, tools []*docagent.Tool, message string) (resp *docagent.Response, err error) {
	defer func(begin time.Time) {
		var conversation string
		var invoked []string
		if resp != nil {
			conversation = resp.ConversationID
			for _, inv := range resp.ToolInvocations {
				invoked = append(invoked, inv.Name)
			}
		}
		a.logger.Info("agent run",
			"conversation", conversation,
			"tools", invoked,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Run(ctx, instructions, tools, message)
}
