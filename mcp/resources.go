package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "docagent://"

// Resource URIs.
const (
	DocumentsURI         = uriScheme + "documents"
	documentURITemplate  = uriScheme + "documents/{id}"
	documentURIPrefix    = uriScheme + "documents/"
	documentsResource    = "documents"
	documentResourceName = "document-content"
)

// registerResources exposes the document memory as read-only resources.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         DocumentsURI,
		Name:        documentsResource,
		Description: "All documents held in document memory",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentURITemplate,
		Name:        documentResourceName,
		Description: "Content of a stored document by ID",
		MIMEType:    "text/plain",
	}, s.handleDocumentResource)
}

// DocumentURI returns the resource URI of the document with id.
func DocumentURI(id string) string {
	return documentURIPrefix + id
}

func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.tools.Store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if docs == nil {
		docs = []*docagent.DocumentInfo{}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractDocumentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.tools.Store.FindDocumentByID(ctx, id)
	if docagent.ErrorCode(err) == docagent.ENOTFOUND {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	} else if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content,
		}},
	}, nil
}

// extractDocumentID returns the ID in docagent://documents/{id}, or "".
func extractDocumentID(uri string) string {
	if !strings.HasPrefix(uri, documentURIPrefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, documentURIPrefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
