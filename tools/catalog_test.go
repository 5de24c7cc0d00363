package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/mock"
	"github.com/fwojciec/docagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolset_GetDocument(t *testing.T) {
	t.Parallel()

	t.Run("unknown URL returns not found with empty metadata", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: newFSStore(t)}

		out := ts.GetDocument(context.Background(), tools.GetDocumentInput{URL: "https://example.com/none"})

		assert.Equal(t, "Document not found", out.Content)
		require.NotNil(t, out.Metadata)
		data, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"content":"Document not found","metadata":{}}`, string(data))
	})

	t.Run("returns stored content and metadata", func(t *testing.T) {
		t.Parallel()

		store := newFSStore(t)
		_, err := store.StoreDocument(context.Background(), "https://example.com/a", "body", docagent.Metadata{"fetched_at": "now"})
		require.NoError(t, err)
		ts := &tools.Toolset{Store: store}

		out := ts.GetDocument(context.Background(), tools.GetDocumentInput{URL: "https://example.com/a"})

		assert.Equal(t, "body", out.Content)
		assert.Equal(t, docagent.Metadata{"fetched_at": "now"}, out.Metadata)
	})

	t.Run("surrounding whitespace finds the fetched document", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		ts := &tools.Toolset{
			Store: newFSStore(t),
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				return "<p>padded</p>", nil
			}},
		}

		// Given a document fetched with a padded URL
		fetched := ts.FetchDocument(ctx, tools.FetchDocumentInput{URL: " https://example.com/p "})
		require.Equal(t, "padded", fetched.Content)

		// When getting it with the same padded URL
		out := ts.GetDocument(ctx, tools.GetDocumentInput{URL: " https://example.com/p "})

		// Then it is found
		assert.Equal(t, "padded", out.Content)
		assert.Contains(t, out.Metadata, docagent.MetaFetchedAt)
	})

	t.Run("store failure reads as not found", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: &mock.DocumentStore{
			FindDocumentByURLFn: func(context.Context, string) (*docagent.Document, error) {
				return nil, errors.New("io error")
			},
		}}

		out := ts.GetDocument(context.Background(), tools.GetDocumentInput{URL: "https://example.com/a"})

		assert.Equal(t, tools.NotFoundContent, out.Content)
		assert.Equal(t, docagent.Metadata{}, out.Metadata)
	})
}

func TestToolset_ListDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns listing unmodified", func(t *testing.T) {
		t.Parallel()

		store := newFSStore(t)
		ctx := context.Background()
		_, err := store.StoreDocument(ctx, "https://b.example", "b", docagent.Metadata{"fetched_at": "2"})
		require.NoError(t, err)
		_, err = store.StoreDocument(ctx, "https://a.example", "a", docagent.Metadata{"fetched_at": "1"})
		require.NoError(t, err)
		ts := &tools.Toolset{Store: store}

		out := ts.ListDocuments(ctx)

		want, err := store.ListDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, out.Documents)
	})

	t.Run("empty store encodes as empty array", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: newFSStore(t)}

		data, err := json.Marshal(ts.ListDocuments(context.Background()))

		require.NoError(t, err)
		assert.JSONEq(t, `{"documents":[]}`, string(data))
	})

	t.Run("store failure yields empty listing", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: &mock.DocumentStore{
			ListDocumentsFn: func(context.Context) ([]*docagent.DocumentInfo, error) {
				return nil, errors.New("corrupt")
			},
		}}

		out := ts.ListDocuments(context.Background())

		require.NotNil(t, out.Documents)
		assert.Empty(t, out.Documents)
	})
}
