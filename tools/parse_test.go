package tools_test

import (
	"testing"

	"github.com/fwojciec/docagent/tools"
	"github.com/stretchr/testify/assert"
)

func TestExtractionChain_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{name: "JSON array", reply: `["a","b"]`, want: []string{"a", "b"}},
		{name: "array inside prose", reply: "Here you go:\n[\"2020\", \"2021\"]\nDone.", want: []string{"2020", "2021"}},
		{name: "array inside code fence", reply: "```json\n[\"x\"]\n```", want: []string{"x"}},
		{name: "non-string items are encoded", reply: `[1, {"k":"v"}, true]`, want: []string{"1", `{"k":"v"}`, "true"}},
		{name: "empty array", reply: `[]`, want: []string{}},
		{name: "non-array JSON is wrapped", reply: ` {"name": "Ada"} `, want: []string{`{"name": "Ada"}`}},
		{name: "plain lines", reply: "item1\nitem2", want: []string{"item1", "item2"}},
		{name: "lines skip blanks and fences", reply: "```\n  first  \n\n second\n```", want: []string{"first", "second"}},
		{name: "malformed bracket falls back to lines", reply: "[a, b\nc]", want: []string{"[a, b", "c]"}},
		{name: "only fences falls back to comma split", reply: "```", want: []string{"```"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tools.ExtractionChain.Parse(tt.reply)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchChain_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "keeps model order",
			reply: `[{"rating":9,"text":"P1"},{"rating":4,"text":"P2"}]`,
			want:  []string{"P1", "P2"},
		},
		{
			name:  "does not re-sort by rating",
			reply: `[{"rating":2,"text":"low"},{"rating":10,"text":"high"}]`,
			want:  []string{"low", "high"},
		},
		{
			name:  "skips elements without text",
			reply: `Top results: [{"rating":9}, "loose", {"rating":7,"text":"P"}]`,
			want:  []string{"P"},
		},
		{
			name:  "malformed bracket span returns the raw reply",
			reply: `[{"rating": 9, "text": "P1"}, {"rating": 4, "text": P2}]`,
			want:  []string{`[{"rating": 9, "text": "P1"}, {"rating": 4, "text": P2}]`},
		},
		{
			name:  "whole-reply object is stringified",
			reply: `{"rating":9,"text":"only"}`,
			want:  []string{`{"rating":9,"text":"only"}`},
		},
		{
			name:  "whole-reply string",
			reply: `"just this"`,
			want:  []string{"just this"},
		},
		{
			name:  "quoted substrings when JSON fails",
			reply: `The best matches are "alpha" and "beta".`,
			want:  []string{"alpha", "beta"},
		},
		{
			name:  "raw reply as last resort",
			reply: "nothing relevant",
			want:  []string{"nothing relevant"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tools.SearchChain.Parse(tt.reply)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChain_Parse(t *testing.T) {
	t.Parallel()

	t.Run("panicking step yields single error item", func(t *testing.T) {
		t.Parallel()

		chain := tools.Chain{
			Steps: []tools.Step{
				func(string) ([]string, bool) { return nil, false },
				func(string) ([]string, bool) { panic("bad reply") },
				func(string) ([]string, bool) { return []string{"unreachable"}, true },
			},
			ErrorPrefix: "Error extracting information",
		}

		got := chain.Parse("x")

		assert.Equal(t, []string{"Error extracting information: bad reply"}, got)
	})

	t.Run("nil result from a step becomes empty slice", func(t *testing.T) {
		t.Parallel()

		chain := tools.Chain{Steps: []tools.Step{func(string) ([]string, bool) { return nil, true }}}

		got := chain.Parse("x")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("no matching step returns the reply", func(t *testing.T) {
		t.Parallel()

		got := tools.Chain{}.Parse("raw")

		assert.Equal(t, []string{"raw"}, got)
	})
}
