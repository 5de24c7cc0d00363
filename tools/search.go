package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var paragraphSepRe = regexp.MustCompile(`\n\s*\n`)

// SearchDocument asks the model to rate the document's paragraphs against
// the query and returns the passages it ranks highest, in the model's order.
func (t *Toolset) SearchDocument(ctx context.Context, in SearchDocumentInput) SearchDocumentOutput {
	paragraphs := Paragraphs(in.Text)
	if len(paragraphs) == 0 {
		return SearchDocumentOutput{Results: []string{}}
	}
	if len(paragraphs) > SearchParagraphs {
		paragraphs = paragraphs[:SearchParagraphs]
	}

	prompt, err := searchPrompt(in.Query, paragraphs)
	if err != nil {
		return SearchDocumentOutput{Results: []string{fmt.Sprintf("%s: %s", SearchChain.ErrorPrefix, describe(err))}}
	}

	reply, err := t.complete(ctx, prompt)
	if err != nil {
		t.logger().Warn("search_document completion failed", "query", in.Query, "err", err)
		return SearchDocumentOutput{Results: []string{fmt.Sprintf("%s: %s", SearchChain.ErrorPrefix, describe(err))}}
	}
	t.logger().Debug("search_document reply", "reply", truncate(reply, 100))

	return SearchDocumentOutput{Results: SearchChain.Parse(reply)}
}

// Paragraphs splits text on blank lines, trimming and dropping empty ones.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphSepRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func searchPrompt(query string, paragraphs []string) (string, error) {
	var sections bytes.Buffer
	enc := json.NewEncoder(&sections)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(paragraphs); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You need to find paragraphs in a document that answer or relate to the query: %q\n", query)
	sb.WriteString("Rate each paragraph's relevance to the query on a scale of 0-10.\n")
	fmt.Fprintf(&sb, "Return the %d most relevant paragraphs with their ratings as JSON.\n\n", SearchTopResults)
	sb.WriteString("Document sections:\n")
	sb.WriteString(strings.TrimSpace(sections.String()))
	sb.WriteString("\n\nOutput format: [{\"rating\": 8, \"text\": \"paragraph text\"}, ...]\n")
	return sb.String(), nil
}
