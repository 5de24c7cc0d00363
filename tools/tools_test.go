package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/mock"
	"github.com/fwojciec/docagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolset_Tools(t *testing.T) {
	t.Parallel()

	t.Run("declares five tools with schemas", func(t *testing.T) {
		t.Parallel()

		defs, err := (&tools.Toolset{}).Tools()

		require.NoError(t, err)
		var names []string
		for _, d := range defs {
			names = append(names, d.Name)
			assert.NotEmpty(t, d.Description)
			assert.True(t, json.Valid(d.InputSchema), d.Name)
			assert.True(t, json.Valid(d.OutputSchema), d.Name)
			assert.NotNil(t, d.Call)
		}
		assert.Equal(t, []string{
			tools.FetchDocumentName,
			tools.ExtractInfoName,
			tools.SearchDocumentName,
			tools.ListDocumentsName,
			tools.GetDocumentName,
		}, names)
	})

	t.Run("input schema lists required properties", func(t *testing.T) {
		t.Parallel()

		defs, err := (&tools.Toolset{}).Tools()
		require.NoError(t, err)

		var schema struct {
			Type       string                     `json:"type"`
			Properties map[string]json.RawMessage `json:"properties"`
			Required   []string                   `json:"required"`
		}
		require.NoError(t, json.Unmarshal(docagent.FindTool(defs, tools.ExtractInfoName).InputSchema, &schema))

		assert.Equal(t, "object", schema.Type)
		assert.Contains(t, schema.Properties, "text")
		assert.Contains(t, schema.Properties, "info_type")
		assert.ElementsMatch(t, []string{"text", "info_type"}, schema.Required)
	})

	t.Run("call decodes arguments and returns typed output", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: newFSStore(t)}
		defs, err := ts.Tools()
		require.NoError(t, err)

		out, err := docagent.FindTool(defs, tools.GetDocumentName).Call(context.Background(), json.RawMessage(`{"url":"https://example.com/x"}`))

		require.NoError(t, err)
		assert.Equal(t, tools.GetDocumentOutput{Content: tools.NotFoundContent, Metadata: docagent.Metadata{}}, out)
	})

	t.Run("call accepts missing arguments for list_documents", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: &mock.DocumentStore{
			ListDocumentsFn: func(context.Context) ([]*docagent.DocumentInfo, error) {
				return []*docagent.DocumentInfo{{ID: "1", URL: "u"}}, nil
			},
		}}
		defs, err := ts.Tools()
		require.NoError(t, err)

		out, err := docagent.FindTool(defs, tools.ListDocumentsName).Call(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, out.(tools.ListDocumentsOutput).Documents, 1)
	})

	t.Run("call rejects malformed arguments", func(t *testing.T) {
		t.Parallel()

		defs, err := (&tools.Toolset{}).Tools()
		require.NoError(t, err)

		_, err = docagent.FindTool(defs, tools.FetchDocumentName).Call(context.Background(), json.RawMessage(`{"url": 5}`))

		require.Error(t, err)
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}
