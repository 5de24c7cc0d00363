package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// Ensure LoggingStore implements docagent.DocumentStore.
var _ docagent.DocumentStore = (*LoggingStore)(nil)

// LoggingStore wraps a DocumentStore with debug logging.
type LoggingStore struct {
	next   docagent.DocumentStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next docagent.DocumentStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// StoreDocument delegates to the wrapped store and logs the write.
func (s *LoggingStore) StoreDocument(ctx context.Context, url, content string, metadata docagent.Metadata) (id string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store document",
			"url", url,
			"id", id,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StoreDocument(ctx, url, content, metadata)
}

// FindDocumentByID delegates to the wrapped store and logs the lookup.
func (s *LoggingStore) FindDocumentByID(ctx context.Context, id string) (doc *docagent.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find document",
			"id", id,
			"found", doc != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByID(ctx, id)
}

// FindDocumentByURL delegates to the wrapped store and logs the lookup.
func (s *LoggingStore) FindDocumentByURL(ctx context.Context, url string) (doc *docagent.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find document",
			"url", url,
			"found", doc != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByURL(ctx, url)
}

// ListDocuments delegates to the wrapped store and logs the count.
func (s *LoggingStore) ListDocuments(ctx context.Context) (docs []*docagent.DocumentInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list documents",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocuments(ctx)
}
