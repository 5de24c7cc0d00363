package docagent

import (
	"context"
	"encoding/json"
)

// ToolFunc executes a tool with JSON-encoded input and returns a value that
// encodes to the tool's declared output schema.
type ToolFunc func(ctx context.Context, input json.RawMessage) (any, error)

// Tool is a capability with a declared input and output schema that an
// orchestrating agent can invoke.
//
// Tools report domain failures inside their normal output. Call only
// returns an error when the input cannot be decoded.
type Tool struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	InputSchema  json.RawMessage `json:"inputSchema"`
	OutputSchema json.RawMessage `json:"outputSchema"`
	Call         ToolFunc        `json:"-"`
}

// ToolInvocation records a single tool call made while answering a message.
type ToolInvocation struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// FindTool returns the tool with the given name, or nil.
func FindTool(tools []*Tool, name string) *Tool {
	for _, t := range tools {
		if t.Name == name {
			return t
		}
	}
	return nil
}
