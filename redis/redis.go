// Package redis provides a document store backed by Redis, so several
// processes can share one document memory.
//
// Each document is a hash at <prefix>doc:<id> holding url, content,
// metadata (JSON) and updated_at. The set <prefix>ids indexes every
// stored ID.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/docagent"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "docagent:"

// connectionTimeout bounds the ping in NewClient.
const connectionTimeout = 5 * time.Second

// Compile-time interface verification.
var _ docagent.DocumentStore = (*DocumentStore)(nil)

// NewClient connects to addr and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// DocumentStore implements docagent.DocumentStore on Redis.
type DocumentStore struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *DocumentStore) {
		s.prefix = prefix
	}
}

// NewDocumentStore creates a store using client. The caller owns the client.
func NewDocumentStore(client redis.UniversalClient, opts ...Option) *DocumentStore {
	s := &DocumentStore{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DocumentStore) docKey(id string) string {
	return s.prefix + "doc:" + id
}

func (s *DocumentStore) idsKey() string {
	return s.prefix + "ids"
}

// StoreDocument writes the document hash and its index entry in one
// transaction. Last write wins.
func (s *DocumentStore) StoreDocument(ctx context.Context, url, content string, metadata docagent.Metadata) (string, error) {
	if url == "" {
		return "", docagent.Errorf(docagent.EINVALID, "document URL required")
	}

	meta, err := json.Marshal(metadata.Clone())
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}

	id := docagent.DocumentID(url)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docKey(id),
			"url", url,
			"content", content,
			"metadata", string(meta),
			"updated_at", time.Now().UTC().Format(time.RFC3339),
		)
		pipe.SAdd(ctx, s.idsKey(), id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storing document: %w", err)
	}
	return id, nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*docagent.Document, error) {
	fields, err := s.client.HGetAll(ctx, s.docKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if len(fields) == 0 {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found")
	}

	meta, err := decodeMetadata(fields["metadata"])
	if err != nil {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "document not found: %v", err)
	}
	return &docagent.Document{
		ID:       id,
		URL:      fields["url"],
		Content:  fields["content"],
		Metadata: meta,
	}, nil
}

// FindDocumentByURL retrieves a document by its source URL.
func (s *DocumentStore) FindDocumentByURL(ctx context.Context, url string) (*docagent.Document, error) {
	return s.FindDocumentByID(ctx, docagent.DocumentID(url))
}

// ListDocuments returns all documents ordered by URL without reading
// content. Index entries whose hash has disappeared or whose metadata is
// corrupt are skipped.
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]*docagent.DocumentInfo, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := []*docagent.DocumentInfo{}
	if len(ids) == 0 {
		return docs, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.SliceCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.HMGet(ctx, s.docKey(id), "url", "metadata")
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	for _, id := range ids {
		values, err := cmds[id].Result()
		if err != nil || len(values) != 2 {
			continue
		}
		url, ok := values[0].(string)
		if !ok {
			continue
		}
		raw, _ := values[1].(string)
		meta, err := decodeMetadata(raw)
		if err != nil {
			continue
		}
		docs = append(docs, &docagent.DocumentInfo{ID: id, URL: url, Metadata: meta})
	}

	slices.SortFunc(docs, func(a, b *docagent.DocumentInfo) int {
		return strings.Compare(a.URL, b.URL)
	})
	return docs, nil
}

func decodeMetadata(raw string) (docagent.Metadata, error) {
	meta := docagent.Metadata{}
	if raw == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("invalid metadata JSON: %w", err)
	}
	if meta == nil {
		meta = docagent.Metadata{}
	}
	return meta, nil
}
