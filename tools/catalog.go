package tools

import (
	"context"
	"strings"

	"github.com/fwojciec/docagent"
)

// ListDocuments returns the store's listing unmodified. A store failure is
// logged and reported as an empty listing.
func (t *Toolset) ListDocuments(ctx context.Context) ListDocumentsOutput {
	docs, err := t.Store.ListDocuments(ctx)
	if err != nil {
		t.logger().Warn("listing documents", "err", err)
		return ListDocumentsOutput{Documents: []*docagent.DocumentInfo{}}
	}
	if docs == nil {
		docs = []*docagent.DocumentInfo{}
	}
	return ListDocumentsOutput{Documents: docs}
}

// GetDocument returns stored content and metadata for the URL, or
// NotFoundContent with empty metadata. The URL is trimmed the same way
// FetchDocument trims it.
func (t *Toolset) GetDocument(ctx context.Context, in GetDocumentInput) GetDocumentOutput {
	url := strings.TrimSpace(in.URL)
	doc, err := t.Store.FindDocumentByURL(ctx, url)
	if err != nil {
		if docagent.ErrorCode(err) != docagent.ENOTFOUND {
			t.logger().Warn("reading document", "url", url, "err", err)
		}
		return GetDocumentOutput{Content: NotFoundContent, Metadata: docagent.Metadata{}}
	}
	return GetDocumentOutput{Content: doc.Content, Metadata: doc.Metadata.Clone()}
}
