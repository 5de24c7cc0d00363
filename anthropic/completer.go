// Package anthropic implements docagent.Completer using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fwojciec/docagent"
)

// DefaultModel is used when neither the Completer nor the request names one.
const DefaultModel = "claude-sonnet-4-5"

// DefaultMaxTokens caps the length of a reply.
const DefaultMaxTokens = 4096

// Ensure Completer implements docagent.Completer at compile time.
var _ docagent.Completer = (*Completer)(nil)

// Completer implements docagent.Completer using the Anthropic API.
type Completer struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *anthropic.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model, maxTokens: DefaultMaxTokens}
}

// Complete implements docagent.Completer. Text blocks of the reply are
// concatenated.
func (c *Completer) Complete(ctx context.Context, req *docagent.CompletionRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", docagent.Errorf(docagent.EINVALID, "at least one message required")
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	params := BuildParams(model, c.maxTokens, req)
	if len(params.Messages) == 0 {
		return "", docagent.Errorf(docagent.EINVALID, "at least one non-system message required")
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", docagent.Errorf(docagent.EINTERNAL, "anthropic returned no text")
	}
	return b.String(), nil
}

// BuildParams converts a completion request into Messages API parameters.
// System messages move into the system prompt.
func BuildParams(model string, maxTokens int64, req *docagent.CompletionRequest) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
	}

	var system []string
	for _, m := range req.Messages {
		switch m.Role {
		case docagent.RoleSystem:
			system = append(system, m.Content)
		case docagent.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(system) > 0 {
		params.System = []anthropic.TextBlockParam{{Text: strings.Join(system, "\n\n")}}
	}
	return params
}
