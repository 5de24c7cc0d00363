package tools

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Step tries one interpretation of a model reply. It reports false when the
// reply does not fit, so the next step is tried.
type Step func(reply string) ([]string, bool)

// Chain is an ordered list of parse steps, strictest first.
type Chain struct {
	Steps []Step
	// ErrorPrefix labels the single-element result produced when a step
	// panics, e.g. "Error extracting information".
	ErrorPrefix string
}

// Parse runs the steps in order and returns the first usable result. It
// never panics and never returns nil.
func (c Chain) Parse(reply string) (items []string) {
	defer func() {
		if r := recover(); r != nil {
			items = []string{fmt.Sprintf("%s: %v", c.ErrorPrefix, r)}
		}
	}()

	for _, step := range c.Steps {
		if out, ok := step(reply); ok {
			if out == nil {
				out = []string{}
			}
			return out
		}
	}
	return []string{reply}
}

var (
	// bracketRe is greedy: it spans from the first '[' to the last ']'.
	bracketRe = regexp.MustCompile(`(?s)\[.*\]`)
	quotedRe  = regexp.MustCompile(`"([^"]+)"`)
)

// ExtractionChain parses replies to the extraction prompt.
var ExtractionChain = Chain{
	Steps: []Step{
		bracketArray,
		wholeReplyJSON,
		nonEmptyLines,
		commaSplit,
	},
	ErrorPrefix: "Error extracting information",
}

// SearchChain parses replies to the search prompt.
var SearchChain = Chain{
	Steps: []Step{
		bracketTexts,
		wholeReplyTexts,
		quotedSubstrings,
		rawReply,
	},
	ErrorPrefix: "Error searching document",
}

// bracketArray parses the greedy [...] span as a JSON array.
func bracketArray(reply string) ([]string, bool) {
	span := bracketRe.FindString(reply)
	if span == "" {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out, true
}

// wholeReplyJSON applies only when the reply has no [...] span. A reply that
// parses as JSON but is not an array is wrapped as a single item.
func wholeReplyJSON(reply string) ([]string, bool) {
	if bracketRe.MatchString(reply) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(reply), &v); err != nil {
		return nil, false
	}
	return []string{strings.TrimSpace(reply)}, true
}

// nonEmptyLines keeps trimmed non-empty lines, dropping code fence markers.
func nonEmptyLines(reply string) ([]string, bool) {
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") || strings.HasSuffix(line, "```") {
			continue
		}
		out = append(out, line)
	}
	return out, len(out) > 0
}

func commaSplit(reply string) ([]string, bool) {
	parts := strings.Split(reply, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

// bracketTexts parses the greedy [...] span and takes the text field of
// every object element that has one. A span that is not valid JSON ends the
// chain with the raw reply.
func bracketTexts(reply string) ([]string, bool) {
	span := bracketRe.FindString(reply)
	if span == "" {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return []string{reply}, true
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			if text, ok := obj["text"]; ok {
				out = append(out, stringify(text))
			}
		}
	}
	return out, true
}

// wholeReplyTexts applies only when the reply has no [...] span. List
// elements contribute their text field, or themselves when they have none.
func wholeReplyTexts(reply string) ([]string, bool) {
	if bracketRe.MatchString(reply) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(reply), &v); err != nil {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		return []string{stringify(v)}, true
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			if text, ok := obj["text"]; ok {
				out = append(out, stringify(text))
				continue
			}
		}
		out = append(out, stringify(item))
	}
	return out, true
}

func quotedSubstrings(reply string) ([]string, bool) {
	matches := quotedRe.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out, true
}

func rawReply(reply string) ([]string, bool) {
	return []string{reply}, true
}

// stringify renders a decoded JSON value as a result item. Strings are kept
// verbatim; everything else is re-encoded as compact JSON.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
