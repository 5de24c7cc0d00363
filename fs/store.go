// Package fs provides the file-based document store: an index.json file
// plus one <id>.txt content file per document, all in one directory.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fwojciec/docagent"
)

// IndexFilename is the name of the index file inside the store directory.
const IndexFilename = "index.json"

// Ensure DocumentStore implements docagent.DocumentStore at compile time.
var _ docagent.DocumentStore = (*DocumentStore)(nil)

// index is the persisted mapping from document ID to location and metadata.
type index struct {
	Documents map[string]*indexEntry `json:"documents"`
}

type indexEntry struct {
	URL      string            `json:"url"`
	Path     string            `json:"path"`
	Metadata docagent.Metadata `json:"metadata"`
}

// DocumentStore implements docagent.DocumentStore on the local filesystem.
//
// The index is rewritten in full on every store. The mutex only guards the
// in-memory index within one process; separate processes sharing a
// directory can still overwrite each other's index.
type DocumentStore struct {
	mu     sync.Mutex
	dir    string
	index  *index
	logger *slog.Logger
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithLogger sets the logger used to report swallowed read failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *DocumentStore) {
		s.logger = logger
	}
}

// NewDocumentStore creates a new DocumentStore rooted at dir.
// Call Open before use.
func NewDocumentStore(dir string, opts ...Option) *DocumentStore {
	s := &DocumentStore{
		dir:    dir,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// Open creates the store directory if needed and loads the index.
// A missing index file is treated as an empty store.
func (s *DocumentStore) Open() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	idx, err := s.loadIndex()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()
	return nil
}

func (s *DocumentStore) indexPath() string {
	return filepath.Join(s.dir, IndexFilename)
}

func (s *DocumentStore) contentPath(id string) string {
	return filepath.Join(s.dir, id+".txt")
}

func (s *DocumentStore) loadIndex() (*index, error) {
	data, err := os.ReadFile(s.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return &index{Documents: make(map[string]*indexEntry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "corrupt index %s: %v", s.indexPath(), err)
	}
	if idx.Documents == nil {
		idx.Documents = make(map[string]*indexEntry)
	}
	return &idx, nil
}

// saveIndex rewrites the whole index. Caller must hold s.mu.
func (s *DocumentStore) saveIndex() error {
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return writeFile(s.indexPath(), data)
}

// StoreDocument writes content to <id>.txt, replaces the index entry for the
// URL and rewrites the index. Last write wins.
func (s *DocumentStore) StoreDocument(ctx context.Context, url, content string, metadata docagent.Metadata) (string, error) {
	if url == "" {
		return "", docagent.Errorf(docagent.EINVALID, "document URL required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return "", docagent.Errorf(docagent.EINTERNAL, "document store not open")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating store directory: %w", err)
	}

	meta, err := normalizeMetadata(metadata)
	if err != nil {
		return "", err
	}

	id := docagent.DocumentID(url)
	path := s.contentPath(id)
	if err := writeFile(path, []byte(content)); err != nil {
		return "", fmt.Errorf("writing document content: %w", err)
	}

	prev, existed := s.index.Documents[id]
	s.index.Documents[id] = &indexEntry{
		URL:      url,
		Path:     path,
		Metadata: meta,
	}

	if err := s.saveIndex(); err != nil {
		if existed {
			s.index.Documents[id] = prev
		} else {
			delete(s.index.Documents, id)
		}
		return "", fmt.Errorf("writing index: %w", err)
	}

	return id, nil
}

// FindDocumentByID returns the document with the given ID. Unknown IDs and
// unreadable content files both return ENOTFOUND; read failures are logged.
func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*docagent.Document, error) {
	s.mu.Lock()
	var entry indexEntry
	e, ok := s.index.lookup(id)
	if ok {
		entry = *e
	}
	s.mu.Unlock()

	if !ok {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found")
	}

	content, err := os.ReadFile(entry.Path)
	if err != nil {
		s.logger.Warn("reading document content",
			"id", id,
			"path", entry.Path,
			"err", err,
		)
		return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found")
	}

	return &docagent.Document{
		ID:       id,
		URL:      entry.URL,
		Content:  string(content),
		Metadata: entry.Metadata.Clone(),
	}, nil
}

// FindDocumentByURL derives the ID from url and delegates to FindDocumentByID.
func (s *DocumentStore) FindDocumentByURL(ctx context.Context, url string) (*docagent.Document, error) {
	return s.FindDocumentByID(ctx, docagent.DocumentID(url))
}

// ListDocuments returns all index entries sorted by URL. Content files are
// not read.
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]*docagent.DocumentInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return []*docagent.DocumentInfo{}, nil
	}

	docs := make([]*docagent.DocumentInfo, 0, len(s.index.Documents))
	for id, entry := range s.index.Documents {
		docs = append(docs, &docagent.DocumentInfo{
			ID:       id,
			URL:      entry.URL,
			Metadata: entry.Metadata.Clone(),
		})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].URL < docs[j].URL
	})
	return docs, nil
}

// normalizeMetadata round-trips m through JSON so the in-memory index holds
// the same values a reopened index decodes (numbers become float64).
func normalizeMetadata(m docagent.Metadata) (docagent.Metadata, error) {
	data, err := json.Marshal(m.Clone())
	if err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "metadata is not JSON-serializable: %v", err)
	}
	out := docagent.Metadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return out, nil
}

func (idx *index) lookup(id string) (*indexEntry, bool) {
	if idx == nil {
		return nil, false
	}
	e, ok := idx.Documents[id]
	return e, ok
}

// writeFile replaces path with data by writing a sibling temp file and
// renaming it into place.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
