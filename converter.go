package docagent

import "regexp"

// Converter turns fetched markup into the text stored for a document.
type Converter interface {
	// Convert transforms raw fetched content into document text.
	Convert(html string) (string, error)
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// StripTags deletes every <...> span from s. It is not an HTML parser:
// literal angle brackets in text are removed along with real tags.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Ensure TagStripper implements Converter at compile time.
var _ Converter = TagStripper{}

// TagStripper is the default Converter. It removes markup with StripTags and
// leaves everything else, including whitespace and entities, untouched.
type TagStripper struct{}

// Convert implements Converter.
func (TagStripper) Convert(html string) (string, error) {
	return StripTags(html), nil
}
