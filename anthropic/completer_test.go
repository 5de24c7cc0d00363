package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, status int, body string, got *map[string]any) *sdk.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := sdk.NewClient(
		option.WithBaseURL(srv.URL),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	)
	return &client
}

func reply(blocks ...string) string {
	content := make([]map[string]string, 0, len(blocks))
	for _, text := range blocks {
		content = append(content, map[string]string{"type": "text", "text": text})
	}
	data, _ := json.Marshal(map[string]any{
		"id":            "msg_1",
		"type":          "message",
		"role":          "assistant",
		"model":         anthropic.DefaultModel,
		"content":       content,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]int{"input_tokens": 1, "output_tokens": 1},
	})
	return string(data)
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("moves system messages into the system prompt", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams("m", 100, &docagent.CompletionRequest{
			Messages: []docagent.Message{
				{Role: docagent.RoleSystem, Content: "be brief"},
				{Role: docagent.RoleUser, Content: "hello"},
				{Role: docagent.RoleAssistant, Content: "hi"},
				{Role: docagent.RoleSystem, Content: "be kind"},
			},
			Temperature: 0.2,
		})

		require.Len(t, params.System, 1)
		assert.Equal(t, "be brief\n\nbe kind", params.System[0].Text)
		require.Len(t, params.Messages, 2)
		assert.Equal(t, sdk.MessageParamRoleUser, params.Messages[0].Role)
		assert.Equal(t, sdk.MessageParamRoleAssistant, params.Messages[1].Role)
		assert.Equal(t, int64(100), params.MaxTokens)
	})

	t.Run("omits empty system prompt", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams("m", 100, &docagent.CompletionRequest{
			Messages: []docagent.Message{{Role: docagent.RoleUser, Content: "hello"}},
		})

		assert.Empty(t, params.System)
	})
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("joins text blocks of the reply", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.StatusOK, reply(`["a",`, ` "b"]`), nil)
		c := anthropic.NewCompleter(client, "")

		text, err := c.Complete(context.Background(), &docagent.CompletionRequest{
			Messages: []docagent.Message{{Role: docagent.RoleUser, Content: "hi"}},
		})

		require.NoError(t, err)
		assert.Equal(t, `["a", "b"]`, text)
	})

	t.Run("sends model system and temperature", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		client := newClient(t, http.StatusOK, reply("ok"), &got)
		c := anthropic.NewCompleter(client, "claude-test")

		_, err := c.Complete(context.Background(), &docagent.CompletionRequest{
			Messages: []docagent.Message{
				{Role: docagent.RoleSystem, Content: "sys"},
				{Role: docagent.RoleUser, Content: "hi"},
			},
			Temperature: 0.5,
		})

		require.NoError(t, err)
		assert.Equal(t, "claude-test", got["model"])
		assert.InDelta(t, 0.5, got["temperature"], 0.0001)
		assert.Contains(t, got, "system")
		messages, ok := got["messages"].([]any)
		require.True(t, ok)
		assert.Len(t, messages, 1)
	})

	t.Run("request model overrides default", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		client := newClient(t, http.StatusOK, reply("ok"), &got)
		c := anthropic.NewCompleter(client, "claude-test")

		_, err := c.Complete(context.Background(), &docagent.CompletionRequest{
			Model:    "claude-other",
			Messages: []docagent.Message{{Role: docagent.RoleUser, Content: "hi"}},
		})

		require.NoError(t, err)
		assert.Equal(t, "claude-other", got["model"])
	})

	t.Run("reply without text is an internal error", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.StatusOK, reply(), nil)
		c := anthropic.NewCompleter(client, "")

		_, err := c.Complete(context.Background(), &docagent.CompletionRequest{
			Messages: []docagent.Message{{Role: docagent.RoleUser, Content: "hi"}},
		})

		assert.Equal(t, docagent.EINTERNAL, docagent.ErrorCode(err))
	})

	t.Run("API errors are returned", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`, nil)
		c := anthropic.NewCompleter(client, "")

		_, err := c.Complete(context.Background(), &docagent.CompletionRequest{
			Messages: []docagent.Message{{Role: docagent.RoleUser, Content: "hi"}},
		})

		assert.Error(t, err)
	})

	t.Run("rejects empty and system-only requests", func(t *testing.T) {
		t.Parallel()

		c := anthropic.NewCompleter(nil, "") // validation runs before the client

		_, err := c.Complete(context.Background(), &docagent.CompletionRequest{})
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))

		_, err = c.Complete(context.Background(), &docagent.CompletionRequest{
			Messages: []docagent.Message{{Role: docagent.RoleSystem, Content: "sys"}},
		})
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}
