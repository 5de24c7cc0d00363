// Package tools implements the document-analysis tools an orchestrating
// agent can call: fetch_document, extract_info, search_document,
// list_documents and get_document.
//
// Every tool reports failures inside its normal output field as a
// human-readable string. Only undecodable arguments surface as errors.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
	"github.com/google/jsonschema-go/jsonschema"
)

// Tool names.
const (
	FetchDocumentName  = "fetch_document"
	ExtractInfoName    = "extract_info"
	SearchDocumentName = "search_document"
	ListDocumentsName  = "list_documents"
	GetDocumentName    = "get_document"
)

// Tool descriptions shown to the model.
const (
	FetchDocumentDescription  = "Fetches a document from a URL and returns its content. Checks document memory first before making a network request."
	ExtractInfoDescription    = "Extracts the specified type of information from text using the language model."
	SearchDocumentDescription = "Searches for the paragraphs of a document most relevant to a query."
	ListDocumentsDescription  = "Lists all documents stored in memory."
	GetDocumentDescription    = "Retrieves a previously fetched document from memory by URL."
)

// Limits applied to model prompts.
const (
	ExtractTextLimit  = 2000
	SearchParagraphs  = 15
	SearchTopResults  = 3
	PromptTemperature = 0.1
)

// NotFoundContent is the get_document content for unknown URLs.
const NotFoundContent = "Document not found"

// FetchErrorPrefix starts every fetch_document failure message.
const FetchErrorPrefix = "Error fetching document: "

// Toolset holds the collaborators shared by all tools. It is constructed
// once per process and passed to whoever dispatches tool calls.
type Toolset struct {
	Store     docagent.DocumentStore
	Fetcher   docagent.Fetcher
	Completer docagent.Completer

	// Converter turns fetched bodies into stored text. Defaults to
	// docagent.TagStripper.
	Converter docagent.Converter
	// Inspector and TokenCounter add optional metadata on fetch.
	Inspector    docagent.Inspector
	TokenCounter docagent.TokenCounter

	// Model is passed on every completion request. Empty defers to the
	// Completer's default.
	Model  string
	Logger *slog.Logger
	// Now returns the fetch timestamp. Defaults to time.Now.
	Now func() time.Time
}

// FetchDocumentInput is the input of fetch_document.
type FetchDocumentInput struct {
	URL string `json:"url" jsonschema:"URL of the document to fetch"`
}

// FetchDocumentOutput is the output of fetch_document.
type FetchDocumentOutput struct {
	Content string `json:"content" jsonschema:"Content of the document"`
}

// ExtractInfoInput is the input of extract_info.
type ExtractInfoInput struct {
	Text     string `json:"text" jsonschema:"Text to extract information from"`
	InfoType string `json:"info_type" jsonschema:"Type of information to extract (e.g. 'dates', 'names', 'key points')"`
}

// ExtractInfoOutput is the output of extract_info.
type ExtractInfoOutput struct {
	Information []string `json:"information" jsonschema:"List of extracted information"`
}

// SearchDocumentInput is the input of search_document.
type SearchDocumentInput struct {
	Text  string `json:"text" jsonschema:"Document text to search within"`
	Query string `json:"query" jsonschema:"Query to search for"`
}

// SearchDocumentOutput is the output of search_document.
type SearchDocumentOutput struct {
	Results []string `json:"results" jsonschema:"List of matching paragraphs or sentences"`
}

// ListDocumentsInput is the (empty) input of list_documents.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output of list_documents.
type ListDocumentsOutput struct {
	Documents []*docagent.DocumentInfo `json:"documents" jsonschema:"List of stored documents"`
}

// GetDocumentInput is the input of get_document.
type GetDocumentInput struct {
	URL string `json:"url" jsonschema:"URL of the document to retrieve"`
}

// GetDocumentOutput is the output of get_document.
type GetDocumentOutput struct {
	Content  string            `json:"content" jsonschema:"Content of the retrieved document"`
	Metadata docagent.Metadata `json:"metadata" jsonschema:"Metadata of the document"`
}

// Tools returns the tool definitions with schemas inferred from the input
// and output types.
func (t *Toolset) Tools() ([]*docagent.Tool, error) {
	var errs []error
	tools := make([]*docagent.Tool, 0, 5)
	add := func(tool *docagent.Tool, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		tools = append(tools, tool)
	}

	add(define(FetchDocumentName, FetchDocumentDescription, t.FetchDocument))
	add(define(ExtractInfoName, ExtractInfoDescription, t.ExtractInfo))
	add(define(SearchDocumentName, SearchDocumentDescription, t.SearchDocument))
	add(define(ListDocumentsName, ListDocumentsDescription,
		func(ctx context.Context, _ ListDocumentsInput) ListDocumentsOutput { return t.ListDocuments(ctx) }))
	add(define(GetDocumentName, GetDocumentDescription, t.GetDocument))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return tools, nil
}

// define builds a tool whose Call decodes In, runs fn and returns Out.
func define[In, Out any](name, description string, fn func(context.Context, In) Out) (*docagent.Tool, error) {
	in, err := schemaFor[In]()
	if err != nil {
		return nil, docagent.Errorf(docagent.EINTERNAL, "input schema for %s: %v", name, err)
	}
	out, err := schemaFor[Out]()
	if err != nil {
		return nil, docagent.Errorf(docagent.EINTERNAL, "output schema for %s: %v", name, err)
	}

	return &docagent.Tool{
		Name:         name,
		Description:  description,
		InputSchema:  in,
		OutputSchema: out,
		Call: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var input In
			if len(raw) > 0 && string(raw) != "null" {
				if err := json.Unmarshal(raw, &input); err != nil {
					return nil, docagent.Errorf(docagent.EINVALID, "invalid arguments for %s: %v", name, err)
				}
			}
			return fn(ctx, input), nil
		},
	}, nil
}

func schemaFor[T any]() (json.RawMessage, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(schema)
}

func (t *Toolset) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

func (t *Toolset) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *Toolset) converter() docagent.Converter {
	if t.Converter == nil {
		return docagent.TagStripper{}
	}
	return t.Converter
}

// describe renders err for a tool result. Application errors show their
// message; anything else shows its full text.
func describe(err error) string {
	var e *docagent.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// complete sends a single user prompt at the tools' fixed temperature.
func (t *Toolset) complete(ctx context.Context, prompt string) (string, error) {
	return t.Completer.Complete(ctx, &docagent.CompletionRequest{
		Model:       t.Model,
		Messages:    []docagent.Message{{Role: docagent.RoleUser, Content: prompt}},
		Temperature: PromptTemperature,
	})
}
