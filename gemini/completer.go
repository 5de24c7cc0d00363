// Package gemini implements docagent.Completer and docagent.TokenCounter
// using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/docagent"
	"google.golang.org/genai"
)

// DefaultModel is used when neither the Completer nor the request names one.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements docagent.Completer at compile time.
var _ docagent.Completer = (*Completer)(nil)

// Completer implements docagent.Completer using the Gemini API.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete implements docagent.Completer.
func (c *Completer) Complete(ctx context.Context, req *docagent.CompletionRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", docagent.Errorf(docagent.EINVALID, "at least one message required")
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	system, contents := BuildContents(req.Messages)
	if len(contents) == 0 {
		return "", docagent.Errorf(docagent.EINVALID, "at least one non-system message required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model, contents, BuildConfig(system, req.Temperature))
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docagent.Errorf(docagent.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildContents splits chat messages into a system instruction and Gemini
// contents. Assistant messages become the "model" role.
func BuildContents(messages []docagent.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case docagent.RoleSystem:
			system = append(system, m.Content)
		case docagent.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

// BuildConfig returns the GenerateContentConfig for a completion.
func BuildConfig(system string, temperature float64) *genai.GenerateContentConfig {
	temp := float32(temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
