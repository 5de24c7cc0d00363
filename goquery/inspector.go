// Package goquery reads page metadata from fetched HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docagent"
)

// Ensure Inspector implements docagent.Inspector at compile time.
var _ docagent.Inspector = (*Inspector)(nil)

// Site generator names reported in PageInfo.Generator.
const (
	GeneratorDocusaurus = "Docusaurus"
	GeneratorMkDocs     = "MkDocs"
	GeneratorSphinx     = "Sphinx"
	GeneratorVitePress  = "VitePress"
	GeneratorVuePress   = "VuePress"
	GeneratorGitBook    = "GitBook"
	GeneratorNextra     = "Nextra"
)

// generatorMarkers lists structural markers per generator, in check order.
// VitePress comes before VuePress since it reuses some VuePress markup.
var generatorMarkers = []struct {
	name      string
	selectors []string
}{
	{GeneratorDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"}},
	{GeneratorMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{GeneratorSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{GeneratorVitePress, []string{"#VPContent", ".VPDoc"}},
	{GeneratorVuePress, []string{".theme-default-content", ".vuepress-navbar"}},
	{GeneratorGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{GeneratorNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
}

// Inspector finds title, description, language and site generator in HTML.
// Input that is not HTML yields an empty PageInfo.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect implements docagent.Inspector.
func (i *Inspector) Inspect(html string) docagent.PageInfo {
	var info docagent.PageInfo
	if strings.TrimSpace(html) == "" {
		return info
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return info
	}

	info.Title = firstNonEmpty(
		metaContent(doc, "meta[property='og:title']"),
		doc.Find("title").First().Text(),
		doc.Find("h1").First().Text(),
	)
	info.Description = firstNonEmpty(
		metaContent(doc, "meta[name='description']"),
		metaContent(doc, "meta[property='og:description']"),
	)
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		info.Language = strings.TrimSpace(lang)
	}
	info.Generator = detectGenerator(doc)

	return info
}

// detectGenerator prefers the meta generator tag and falls back to markup.
func detectGenerator(doc *goquery.Document) string {
	generator := strings.ToLower(metaContent(doc, "meta[name='generator']"))
	if generator != "" {
		for _, m := range generatorMarkers {
			if strings.Contains(generator, strings.ToLower(m.name)) {
				return m.name
			}
		}
	}

	for _, m := range generatorMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.name
			}
		}
	}

	if hasGitBookClasses(doc) {
		return GeneratorGitBook
	}
	return ""
}

// hasGitBookClasses requires at least two of GitBook's html element classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").First().Attr("class")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
