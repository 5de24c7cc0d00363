package docagent

import "context"

// Message roles understood by Completer implementations.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message sent to a language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single chat completion call.
// Model, Temperature and Messages are the only parameters exercised.
type CompletionRequest struct {
	// Model overrides the implementation's default model when set.
	Model       string
	Messages    []Message
	Temperature float64
}

// Completer sends chat messages to a language model and returns its reply.
type Completer interface {
	// Complete returns the text of the first choice in the model's reply.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
