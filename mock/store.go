package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of docagent.DocumentStore.
type DocumentStore struct {
	StoreDocumentFn     func(ctx context.Context, url, content string, metadata docagent.Metadata) (string, error)
	FindDocumentByIDFn  func(ctx context.Context, id string) (*docagent.Document, error)
	FindDocumentByURLFn func(ctx context.Context, url string) (*docagent.Document, error)
	ListDocumentsFn     func(ctx context.Context) ([]*docagent.DocumentInfo, error)
}

func (s *DocumentStore) StoreDocument(ctx context.Context, url, content string, metadata docagent.Metadata) (string, error) {
	return s.StoreDocumentFn(ctx, url, content, metadata)
}

func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*docagent.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentStore) FindDocumentByURL(ctx context.Context, url string) (*docagent.Document, error) {
	return s.FindDocumentByURLFn(ctx, url)
}

func (s *DocumentStore) ListDocuments(ctx context.Context) ([]*docagent.DocumentInfo, error) {
	return s.ListDocumentsFn(ctx)
}
