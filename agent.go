package docagent

import "context"

// Response is the result of running an agent on a single message.
type Response struct {
	Text            string
	ConversationID  string
	ToolInvocations []ToolInvocation
}

// Agent runs the reasoning loop that selects tools and assembles an answer.
type Agent interface {
	// Run answers message using instructions and the given tools.
	// Model failures are reported in Response.Text rather than as errors.
	Run(ctx context.Context, instructions string, tools []*Tool, message string) (*Response, error)
}
