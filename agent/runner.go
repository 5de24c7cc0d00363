// Package agent implements a tool-calling reasoning loop on top of any
// docagent.Completer.
//
// The model is asked to reply either with a JSON tool call or with a plain
// text answer. Tool results are fed back as user messages until the model
// answers or the step budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/docagent"
	"github.com/google/uuid"
)

// Ensure Runner implements docagent.Agent at compile time.
var _ docagent.Agent = (*Runner)(nil)

// Defaults for Runner.
const (
	DefaultMaxSteps     = 5
	DefaultTemperature  = 0.7
	DefaultHistoryLimit = 20
)

// ErrorPrefix starts the response text when the model cannot be reached.
const ErrorPrefix = "An error occurred: "

// Runner answers messages by letting a language model call tools. A Runner
// is one conversation: earlier questions and answers are sent along with
// each new message, and every response carries the same conversation ID.
type Runner struct {
	completer    docagent.Completer
	model        string
	maxSteps     int
	temperature  float64
	historyLimit int
	logger       *slog.Logger
	newID        func() string

	mu             sync.Mutex
	conversationID string
	history        []docagent.Message
}

// Option configures a Runner.
type Option func(*Runner)

// WithModel sets the model passed on every completion request.
func WithModel(model string) Option {
	return func(r *Runner) {
		r.model = model
	}
}

// WithMaxSteps sets how many tool calls one message may trigger.
// Values below one are ignored.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

// WithTemperature sets the sampling temperature of agent completions.
func WithTemperature(t float64) Option {
	return func(r *Runner) {
		r.temperature = t
	}
}

// WithHistoryLimit bounds how many earlier messages are replayed.
// Zero disables conversation memory.
func WithHistoryLimit(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.historyLimit = n
		}
	}
}

// WithLogger sets the logger for tool dispatch and model failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithIDGenerator replaces the conversation ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		r.newID = fn
	}
}

// NewRunner creates a Runner backed by completer.
func NewRunner(completer docagent.Completer, opts ...Option) *Runner {
	r := &Runner{
		completer:    completer,
		maxSteps:     DefaultMaxSteps,
		temperature:  DefaultTemperature,
		historyLimit: DefaultHistoryLimit,
		logger:       slog.New(slog.DiscardHandler),
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements docagent.Agent. Model failures come back as response text
// starting with ErrorPrefix; only an empty message is an error.
func (r *Runner) Run(ctx context.Context, instructions string, tools []*docagent.Tool, message string) (*docagent.Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "message is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conversationID == "" {
		r.conversationID = r.newID()
	}
	resp := &docagent.Response{
		ConversationID:  r.conversationID,
		ToolInvocations: []docagent.ToolInvocation{},
	}

	system := buildSystemPrompt(instructions, tools)
	turn := []docagent.Message{{Role: docagent.RoleUser, Content: message}}

	for step := 0; step < r.maxSteps; step++ {
		reply, err := r.complete(ctx, system, turn)
		if err != nil {
			return r.failed(resp, err), nil
		}

		call, ok := parseToolCall(reply)
		if !ok || len(tools) == 0 {
			resp.Text = reply
			r.remember(message, reply)
			return resp, nil
		}

		turn = append(turn, docagent.Message{Role: docagent.RoleAssistant, Content: reply})
		result, invoked := r.dispatch(ctx, tools, call)
		if invoked {
			resp.ToolInvocations = append(resp.ToolInvocations, docagent.ToolInvocation{
				Name:  call.Tool,
				Input: decodeInput(call.Input),
			})
		}
		turn = append(turn, docagent.Message{Role: docagent.RoleUser, Content: result})
	}

	// Out of steps: ask once more for a plain answer.
	r.logger.Debug("agent step budget exhausted", "steps", r.maxSteps)
	turn = append(turn, docagent.Message{Role: docagent.RoleUser, Content: finalAnswerPrompt})
	reply, err := r.complete(ctx, system, turn)
	if err != nil {
		return r.failed(resp, err), nil
	}
	resp.Text = reply
	r.remember(message, reply)
	return resp, nil
}

// ConversationID returns the current conversation ID, or "" before the
// first message.
func (r *Runner) ConversationID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conversationID
}

// Reset forgets the conversation. The next message starts a new one.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversationID = ""
	r.history = nil
}

func (r *Runner) complete(ctx context.Context, system string, turn []docagent.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	messages := make([]docagent.Message, 0, 1+len(r.history)+len(turn))
	messages = append(messages, docagent.Message{Role: docagent.RoleSystem, Content: system})
	messages = append(messages, r.history...)
	messages = append(messages, turn...)

	reply, err := r.completer.Complete(ctx, &docagent.CompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: r.temperature,
	})
	if err != nil {
		return "", err
	}
	return stripThinking(reply), nil
}

// dispatch runs one tool call and renders its result for the model. The
// boolean reports whether a known tool was invoked.
func (r *Runner) dispatch(ctx context.Context, tools []*docagent.Tool, call toolCall) (string, bool) {
	tool := docagent.FindTool(tools, call.Tool)
	if tool == nil {
		r.logger.Warn("model requested unknown tool", "tool", call.Tool)
		return unknownToolMessage(call.Tool, tools), false
	}

	out, err := tool.Call(ctx, call.Input)
	if err != nil {
		r.logger.Warn("tool call failed", "tool", call.Tool, "err", err)
		return toolResultMessage(call.Tool, "Error: "+describe(err)), true
	}

	data, err := json.Marshal(out)
	if err != nil {
		r.logger.Error("encoding tool result", "tool", call.Tool, "err", err)
		return toolResultMessage(call.Tool, "Error: "+err.Error()), true
	}
	return toolResultMessage(call.Tool, string(data)), true
}

func (r *Runner) failed(resp *docagent.Response, err error) *docagent.Response {
	r.logger.Error("running agent", "err", err)
	resp.Text = ErrorPrefix + describe(err)
	return resp
}

// remember appends a finished exchange and drops the oldest messages
// beyond the history limit.
func (r *Runner) remember(message, answer string) {
	if r.historyLimit == 0 {
		return
	}
	r.history = append(r.history,
		docagent.Message{Role: docagent.RoleUser, Content: message},
		docagent.Message{Role: docagent.RoleAssistant, Content: answer},
	)
	if over := len(r.history) - r.historyLimit; over > 0 {
		r.history = append([]docagent.Message(nil), r.history[over:]...)
	}
}

func describe(err error) string {
	var e *docagent.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
