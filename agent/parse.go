package agent

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	thinkRegex     = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\n(.*?)\n```")
)

// toolCall is the reply shape that requests a tool invocation.
type toolCall struct {
	Tool  string          `json:"tool"`
	Input json.RawMessage `json:"input"`
}

// parseToolCall reports whether reply asks for a tool. Replies without a
// JSON object carrying a non-empty "tool" field are final answers.
func parseToolCall(reply string) (toolCall, bool) {
	raw := extractObject(reply)
	if raw == "" {
		return toolCall{}, false
	}
	var call toolCall
	if err := json.Unmarshal([]byte(raw), &call); err != nil {
		return toolCall{}, false
	}
	call.Tool = strings.TrimSpace(call.Tool)
	if call.Tool == "" {
		return toolCall{}, false
	}
	return call, true
}

// extractObject returns the JSON object in a fenced code block, or the span
// from the first '{' to the last '}'.
func extractObject(raw string) string {
	if m := codeBlockRegex.FindStringSubmatch(raw); len(m) == 2 {
		raw = m[1]
	}
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return ""
	}
	return raw[start : end+1]
}

// stripThinking removes reasoning blocks some local models emit.
func stripThinking(s string) string {
	return strings.TrimSpace(thinkRegex.ReplaceAllString(s, ""))
}

// decodeInput converts tool arguments into the map recorded on the
// response. Anything other than a JSON object records as empty.
func decodeInput(raw json.RawMessage) map[string]any {
	input := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return input
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil && m != nil {
		return m
	}
	return input
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
