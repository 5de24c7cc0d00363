// Package openai implements docagent.Completer against any endpoint that
// speaks the OpenAI /chat/completions protocol, such as a local Ollama server.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/docagent"
)

// Defaults target a local Ollama server.
const (
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultAPIKey  = "ollama"
	DefaultModel   = "mistral"
	DefaultTimeout = 120 * time.Second
)

// Ensure Completer implements docagent.Completer at compile time.
var _ docagent.Completer = (*Completer)(nil)

// thinkRe matches reasoning blocks emitted by some local models.
var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Completer sends chat completion requests over HTTP.
type Completer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

// Option configures a Completer.
type Option func(*Completer)

// WithBaseURL sets the API base URL, without the /chat/completions suffix.
func WithBaseURL(u string) Option {
	return func(c *Completer) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) Option {
	return func(c *Completer) {
		c.apiKey = key
	}
}

// WithModel sets the model used when a request does not name one.
func WithModel(model string) Option {
	return func(c *Completer) {
		c.model = model
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Completer) {
		c.timeout = d
	}
}

// NewCompleter creates a new Completer.
func NewCompleter(opts ...Option) *Completer {
	c := &Completer{
		baseURL: DefaultBaseURL,
		apiKey:  DefaultAPIKey,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// Model returns the default model name.
func (c *Completer) Model() string {
	return c.model
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []docagent.Message `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete implements docagent.Completer. Reasoning blocks wrapped in
// <think> tags are removed from the reply.
func (c *Completer) Complete(ctx context.Context, req *docagent.CompletionRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", docagent.Errorf(docagent.EINVALID, "at least one message required")
	}

	body := chatRequest{
		Model:    req.Model,
		Messages: req.Messages,
	}
	if body.Model == "" {
		body.Model = c.model
	}
	temp := req.Temperature
	body.Temperature = &temp

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("completion failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("completion failed: %s", out.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("completion failed (status %d)", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", docagent.Errorf(docagent.EINTERNAL, "completion returned no choices")
	}

	return strings.TrimSpace(thinkRe.ReplaceAllString(out.Choices[0].Message.Content, "")), nil
}
