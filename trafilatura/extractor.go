// Package trafilatura removes page boilerplate using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docagent.Extractor at compile time.
var _ docagent.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Fallback extractors are enabled since documentation pages are often short.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements docagent.Extractor.
func (e *Extractor) Extract(rawHTML string) (*docagent.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "extracting main content: %v", err)
	}

	out := &docagent.ExtractResult{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
