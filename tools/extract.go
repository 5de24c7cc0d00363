package tools

import (
	"context"
	"fmt"
	"strings"
)

// ExtractInfo asks the model for every item of the requested type found in
// the text. Only the first ExtractTextLimit characters are sent.
func (t *Toolset) ExtractInfo(ctx context.Context, in ExtractInfoInput) ExtractInfoOutput {
	reply, err := t.complete(ctx, extractPrompt(in.Text, in.InfoType))
	if err != nil {
		t.logger().Warn("extract_info completion failed", "info_type", in.InfoType, "err", err)
		return ExtractInfoOutput{Information: []string{fmt.Sprintf("%s: %s", ExtractionChain.ErrorPrefix, describe(err))}}
	}
	t.logger().Debug("extract_info reply", "reply", truncate(reply, 100))

	return ExtractInfoOutput{Information: ExtractionChain.Parse(reply)}
}

func extractPrompt(text, infoType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Extract all %s from the following text.\n", infoType)
	sb.WriteString("Return ONLY a JSON array with the items.\n\n")
	sb.WriteString("TEXT:\n")
	sb.WriteString(truncate(text, ExtractTextLimit))
	fmt.Fprintf(&sb, "\n\nJSON ARRAY OF %s:\n", strings.ToUpper(infoType))
	return sb.String()
}

// truncate returns at most n characters of s without splitting a rune.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
