package docagent

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// PageInfo is descriptive metadata found in fetched markup. Empty fields
// were not present in the page.
type PageInfo struct {
	Title       string
	Description string
	Language    string
	// Generator names the site generator, e.g. "Sphinx" or "Docusaurus".
	Generator string
}

// Inspector reads descriptive metadata from fetched markup.
type Inspector interface {
	Inspect(html string) PageInfo
}

// Ensure ExtractingConverter implements Converter at compile time.
var _ Converter = (*ExtractingConverter)(nil)

// ExtractingConverter removes boilerplate with an Extractor before handing
// the remaining HTML to another Converter.
type ExtractingConverter struct {
	extractor Extractor
	next      Converter
}

// NewExtractingConverter returns a Converter that runs ext, then next.
func NewExtractingConverter(ext Extractor, next Converter) *ExtractingConverter {
	return &ExtractingConverter{extractor: ext, next: next}
}

// Convert implements Converter.
func (c *ExtractingConverter) Convert(html string) (string, error) {
	result, err := c.extractor.Extract(html)
	if err != nil {
		return "", err
	}
	if result.ContentHTML == "" {
		return "", Errorf(EINVALID, "no main content found")
	}
	return c.next.Convert(result.ContentHTML)
}
