package mcp

import (
	"context"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds the five document tools. Handlers never fail: tool
// failures are reported inside the structured output.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.FetchDocumentName,
		Description: tools.FetchDocumentDescription,
	}, s.handleFetchDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.ExtractInfoName,
		Description: tools.ExtractInfoDescription,
	}, s.handleExtractInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.SearchDocumentName,
		Description: tools.SearchDocumentDescription,
	}, s.handleSearchDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.ListDocumentsName,
		Description: tools.ListDocumentsDescription,
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.GetDocumentName,
		Description: tools.GetDocumentDescription,
	}, s.handleGetDocument)
}

func (s *Server) handleFetchDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input tools.FetchDocumentInput,
) (*mcp.CallToolResult, tools.FetchDocumentOutput, error) {
	return nil, s.tools.FetchDocument(ctx, input), nil
}

func (s *Server) handleExtractInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input tools.ExtractInfoInput,
) (*mcp.CallToolResult, tools.ExtractInfoOutput, error) {
	return nil, s.tools.ExtractInfo(ctx, input), nil
}

func (s *Server) handleSearchDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input tools.SearchDocumentInput,
) (*mcp.CallToolResult, tools.SearchDocumentOutput, error) {
	return nil, s.tools.SearchDocument(ctx, input), nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ tools.ListDocumentsInput,
) (*mcp.CallToolResult, tools.ListDocumentsOutput, error) {
	out := s.tools.ListDocuments(ctx)
	// Output schemas declare metadata as an object, so null is not allowed.
	for _, doc := range out.Documents {
		if doc.Metadata == nil {
			doc.Metadata = docagent.Metadata{}
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input tools.GetDocumentInput,
) (*mcp.CallToolResult, tools.GetDocumentOutput, error) {
	return nil, s.tools.GetDocument(ctx, input), nil
}
