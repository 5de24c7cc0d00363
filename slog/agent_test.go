package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/mock"
	daslog "github.com/fwojciec/docagent/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAgent_Run(t *testing.T) {
	t.Parallel()

	t.Run("logs conversation and invoked tools", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Agent{
			RunFn: func(context.Context, string, []*docagent.Tool, string) (*docagent.Response, error) {
				return &docagent.Response{
					Text:           "done",
					ConversationID: "conv-7",
					ToolInvocations: []docagent.ToolInvocation{
						{Name: "fetch_document"},
						{Name: "search_document"},
					},
				}, nil
			},
		}

		a := daslog.NewLoggingAgent(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		resp, err := a.Run(context.Background(), "instructions", nil, "summarize")

		require.NoError(t, err)
		assert.Equal(t, "done", resp.Text)
		output := buf.String()
		assert.Contains(t, output, "agent run")
		assert.Contains(t, output, "conversation=conv-7")
		assert.Contains(t, output, "tools=\"[fetch_document search_document]\"")
	})

	t.Run("logs error without response", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Agent{
			RunFn: func(context.Context, string, []*docagent.Tool, string) (*docagent.Response, error) {
				return nil, docagent.Errorf(docagent.EINVALID, "message is required")
			},
		}

		a := daslog.NewLoggingAgent(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := a.Run(context.Background(), "", nil, "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "message is required")
	})
}
