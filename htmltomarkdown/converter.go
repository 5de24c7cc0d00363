// Package htmltomarkdown converts fetched HTML into Markdown document text.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docagent"
)

// Ensure Converter implements docagent.Converter at compile time.
var _ docagent.Converter = (*Converter)(nil)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Converter renders HTML as CommonMark with table support. Unlike
// docagent.TagStripper it keeps headings, links and code blocks, so the
// search tool sees real paragraph boundaries.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert implements docagent.Converter. Blank input converts to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", docagent.Errorf(docagent.EINVALID, "converting HTML to markdown: %v", err)
	}

	return strings.TrimSpace(blankRunRe.ReplaceAllString(md, "\n\n")), nil
}
