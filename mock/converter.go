package mock

import "github.com/fwojciec/docagent"

var _ docagent.Converter = (*Converter)(nil)

// Converter is a mock implementation of docagent.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docagent.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docagent.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docagent.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docagent.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docagent.Inspector = (*Inspector)(nil)

// Inspector is a mock implementation of docagent.Inspector.
type Inspector struct {
	InspectFn func(html string) docagent.PageInfo
}

func (i *Inspector) Inspect(html string) docagent.PageInfo {
	return i.InspectFn(html)
}
