package tools_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/fs"
	"github.com/fwojciec/docagent/mock"
	"github.com/fwojciec/docagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFSStore(t *testing.T) *fs.DocumentStore {
	t.Helper()
	store := fs.NewDocumentStore(t.TempDir())
	require.NoError(t, store.Open())
	return store
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestToolset_FetchDocument(t *testing.T) {
	t.Parallel()

	t.Run("strips tags, stores, then serves from memory", func(t *testing.T) {
		t.Parallel()

		// Given a fetcher that answers once
		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calls++
				if calls > 1 {
					t.Fatalf("unexpected network fetch of %s", url)
				}
				return "<b>hi</b>", nil
			},
		}
		ts := &tools.Toolset{Store: newFSStore(t), Fetcher: fetcher, Now: fixedNow}

		// When the same URL is fetched twice
		first := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/a"})
		second := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/a"})

		// Then both return the stripped content and only one fetch happened
		assert.Equal(t, "hi", first.Content)
		assert.Equal(t, "hi", second.Content)
		assert.Equal(t, 1, calls)
	})

	t.Run("records fetch metadata", func(t *testing.T) {
		t.Parallel()

		store := newFSStore(t)
		ts := &tools.Toolset{
			Store: store,
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				return "<html><head><title>T</title></head><body>hello</body></html>", nil
			}},
			Inspector: &mock.Inspector{InspectFn: func(string) docagent.PageInfo {
				return docagent.PageInfo{Title: "T", Generator: "Sphinx"}
			}},
			TokenCounter: &mock.TokenCounter{CountTokensFn: func(context.Context, string) (int, error) {
				return 7, nil
			}},
			Now: fixedNow,
		}

		ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/t"})

		doc, err := store.FindDocumentByURL(context.Background(), "https://example.com/t")
		require.NoError(t, err)
		assert.Equal(t, "Thello", doc.Content)
		assert.Equal(t, "2025-03-01T12:00:00Z", doc.Metadata[docagent.MetaFetchedAt])
		assert.Len(t, doc.Metadata[docagent.MetaContentHash], 16)
		assert.Equal(t, float64(6), doc.Metadata[docagent.MetaBytes])
		assert.Equal(t, "T", doc.Metadata[docagent.MetaTitle])
		assert.Equal(t, "Sphinx", doc.Metadata[docagent.MetaGenerator])
		assert.Equal(t, float64(7), doc.Metadata[docagent.MetaTokens])
		assert.NotContains(t, doc.Metadata, docagent.MetaDescription)
	})

	t.Run("token count failure leaves tokens unset", func(t *testing.T) {
		t.Parallel()

		store := newFSStore(t)
		ts := &tools.Toolset{
			Store:   store,
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "x", nil }},
			TokenCounter: &mock.TokenCounter{CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			}},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/x"})

		assert.Equal(t, "x", out.Content)
		doc, err := store.FindDocumentByURL(context.Background(), "https://example.com/x")
		require.NoError(t, err)
		assert.NotContains(t, doc.Metadata, docagent.MetaTokens)
	})

	t.Run("uses configured converter", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{
			Store:     newFSStore(t),
			Fetcher:   &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<h1>T</h1>", nil }},
			Converter: &mock.Converter{ConvertFn: func(string) (string, error) { return "# T", nil }},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/md"})

		assert.Equal(t, "# T", out.Content)
	})

	t.Run("fetch error becomes content string", func(t *testing.T) {
		t.Parallel()

		store := newFSStore(t)
		ts := &tools.Toolset{
			Store: store,
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 404 for https://example.com/missing")
			}},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/missing"})

		assert.Equal(t, "Error fetching document: HTTP 404 for https://example.com/missing", out.Content)
		docs, err := store.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs, "failed fetches are not stored")
	})

	t.Run("converter error becomes content string", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{
			Store:   newFSStore(t),
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<p></p>", nil }},
			Converter: &mock.Converter{ConvertFn: func(string) (string, error) {
				return "", docagent.Errorf(docagent.EINVALID, "no main content found")
			}},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/e"})

		assert.Equal(t, "Error fetching document: no main content found", out.Content)
	})

	t.Run("store error becomes content string", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{
			Store: &mock.DocumentStore{
				FindDocumentByURLFn: func(context.Context, string) (*docagent.Document, error) {
					return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found")
				},
				StoreDocumentFn: func(context.Context, string, string, docagent.Metadata) (string, error) {
					return "", errors.New("disk full")
				},
			},
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "x", nil }},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/full"})

		assert.Equal(t, "Error fetching document: storing: disk full", out.Content)
	})

	t.Run("unreadable memory falls through to network", func(t *testing.T) {
		t.Parallel()

		fetched := false
		ts := &tools.Toolset{
			Store: &mock.DocumentStore{
				FindDocumentByURLFn: func(context.Context, string) (*docagent.Document, error) {
					return nil, errors.New("permission denied")
				},
				StoreDocumentFn: func(_ context.Context, url, _ string, _ docagent.Metadata) (string, error) {
					return docagent.DocumentID(url), nil
				},
			},
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				fetched = true
				return "fresh", nil
			}},
		}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "https://example.com/p"})

		assert.True(t, fetched)
		assert.Equal(t, "fresh", out.Content)
	})

	t.Run("empty URL is reported", func(t *testing.T) {
		t.Parallel()

		ts := &tools.Toolset{Store: newFSStore(t)}

		out := ts.FetchDocument(context.Background(), tools.FetchDocumentInput{URL: "  "})

		assert.Equal(t, "Error fetching document: URL is required", out.Content)
	})
}
