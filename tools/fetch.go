package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docagent"
)

// FetchDocument returns the content stored for the URL, fetching and
// storing it on a miss. Cached entries never expire.
func (t *Toolset) FetchDocument(ctx context.Context, in FetchDocumentInput) FetchDocumentOutput {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return FetchDocumentOutput{Content: FetchErrorPrefix + "URL is required"}
	}

	doc, err := t.Store.FindDocumentByURL(ctx, url)
	if err == nil {
		t.logger().Debug("document served from memory", "url", url)
		return FetchDocumentOutput{Content: doc.Content}
	}
	if docagent.ErrorCode(err) != docagent.ENOTFOUND {
		t.logger().Warn("reading document memory", "url", url, "err", err)
	}

	body, err := t.Fetcher.Fetch(ctx, url)
	if err != nil {
		return FetchDocumentOutput{Content: FetchErrorPrefix + describe(err)}
	}

	content, err := t.converter().Convert(body)
	if err != nil {
		return FetchDocumentOutput{Content: FetchErrorPrefix + describe(err)}
	}

	if _, err := t.Store.StoreDocument(ctx, url, content, t.fetchMetadata(ctx, body, content)); err != nil {
		return FetchDocumentOutput{Content: FetchErrorPrefix + "storing: " + describe(err)}
	}

	return FetchDocumentOutput{Content: content}
}

// fetchMetadata describes a freshly fetched document. Optional fields are
// only set when their source has something to say.
func (t *Toolset) fetchMetadata(ctx context.Context, body, content string) docagent.Metadata {
	meta := docagent.Metadata{
		docagent.MetaFetchedAt:   t.now().UTC().Format(time.RFC3339),
		docagent.MetaContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(content)),
		docagent.MetaBytes:       len(content),
	}

	if t.Inspector != nil {
		info := t.Inspector.Inspect(body)
		for key, value := range map[string]string{
			docagent.MetaTitle:       info.Title,
			docagent.MetaDescription: info.Description,
			docagent.MetaLanguage:    info.Language,
			docagent.MetaGenerator:   info.Generator,
		} {
			if value != "" {
				meta[key] = value
			}
		}
	}

	if t.TokenCounter != nil {
		n, err := t.TokenCounter.CountTokens(ctx, content)
		if err != nil {
			t.logger().Debug("counting tokens", "err", err)
		} else {
			meta[docagent.MetaTokens] = n
		}
	}

	return meta
}
