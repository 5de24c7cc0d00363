package docagent

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"maps"
)

// Metadata is an open mapping attached to a stored document.
// Values must be JSON-serializable.
type Metadata map[string]any

// Clone returns a shallow copy of m. A nil map clones to an empty one.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	return maps.Clone(m)
}

// Well-known metadata keys written by the retrieval tool.
const (
	MetaFetchedAt   = "fetched_at"
	MetaContentHash = "content_hash"
	MetaBytes       = "bytes"
	MetaTitle       = "title"
	MetaDescription = "description"
	MetaLanguage    = "language"
	MetaGenerator   = "generator"
	MetaTokens      = "tokens"
)

// Document represents a fetched document held in the document store.
type Document struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// DocumentInfo is the listing view of a document. It never carries content.
type DocumentInfo struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Metadata Metadata `json:"metadata"`
}

// DocumentID returns the stable identifier for a document URL.
// The same URL always maps to the same identifier, so storing a URL twice
// overwrites the earlier entry.
func DocumentID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// DocumentStore is a URL-keyed cache of fetched documents.
type DocumentStore interface {
	// StoreDocument writes content and metadata for url, replacing any
	// previous entry for the same URL. Returns the document ID.
	StoreDocument(ctx context.Context, url, content string, metadata Metadata) (string, error)

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the ID is unknown or its content cannot be read.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocumentByURL retrieves a document by its source URL.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByURL(ctx context.Context, url string) (*Document, error)

	// ListDocuments returns every stored document without loading content.
	ListDocuments(ctx context.Context) ([]*DocumentInfo, error)
}
