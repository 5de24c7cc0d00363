package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.Agent = (*Agent)(nil)

// Agent is a mock implementation of docagent.Agent.
type Agent struct {
	RunFn func(ctx context.Context, instructions string, tools []*docagent.Tool, message string) (*docagent.Response, error)
}

func (a *Agent) Run(ctx context.Context, instructions string, tools []*docagent.Tool, message string) (*docagent.Response, error) {
	return a.RunFn(ctx, instructions, tools, message)
}
