package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements docagent.Converter at compile time.
var _ docagent.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Title</h1><p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nHello, world!", md)
	})

	t.Run("keeps links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Visit <a href="https://example.com">Example</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("keeps fenced code with language hint", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code class="language-go">fmt.Println("hi")</code></pre>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, `fmt.Println("hi")`)
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Name</th><th>Value</th></tr></thead>
<tbody><tr><td>a</td><td>1</td></tr></tbody></table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Name")
		assert.Contains(t, md, "| a")
	})

	t.Run("separates blocks with single blank lines", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>one</p><div><br><br><br></div><p>two</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
		assert.True(t, strings.HasPrefix(md, "one"))
		assert.True(t, strings.HasSuffix(md, "two"))
	})

	t.Run("blank input converts to empty text", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
