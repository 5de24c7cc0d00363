package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docagent"
)

// Compile-time interface verification.
var _ docagent.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements docagent.DocumentStore using SQLite.
// It keeps the same URL-keyed overwrite semantics as the file store.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// StoreDocument upserts the document for url. Last write wins.
func (s *DocumentStore) StoreDocument(ctx context.Context, url, content string, metadata docagent.Metadata) (string, error) {
	if url == "" {
		return "", docagent.Errorf(docagent.EINVALID, "document URL required")
	}

	meta, err := encodeMetadata(metadata)
	if err != nil {
		return "", err
	}

	id := docagent.DocumentID(url)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, url, content, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			content = excluded.content,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, id, url, content, meta, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	return id, nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*docagent.Document, error) {
	var doc docagent.Document
	var meta string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, content, metadata
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.URL, &doc.Content, &meta)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.Metadata, err = decodeMetadata(meta)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocumentByURL retrieves a document by its source URL.
func (s *DocumentStore) FindDocumentByURL(ctx context.Context, url string) (*docagent.Document, error) {
	return s.FindDocumentByID(ctx, docagent.DocumentID(url))
}

// ListDocuments returns all documents ordered by URL. The content column is
// never selected.
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]*docagent.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, metadata, updated_at
		FROM documents
		ORDER BY url ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*docagent.DocumentInfo{}
	for rows.Next() {
		var info docagent.DocumentInfo
		var meta, updatedAt string

		if err := rows.Scan(&info.ID, &info.URL, &meta, &updatedAt); err != nil {
			return nil, err
		}
		if _, err := parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		if info.Metadata, err = decodeMetadata(meta); err != nil {
			return nil, err
		}
		docs = append(docs, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
