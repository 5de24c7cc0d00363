// Package mcp exposes the document tools over the Model Context Protocol so
// external orchestrators can call them with their declared schemas.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/docagent/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Implementation name and version reported to clients.
const (
	Name    = "docagent"
	Version = "0.1.0"
)

// Server is the MCP server for the document tools.
type Server struct {
	tools  *tools.Toolset
	server *mcp.Server
}

// NewServer creates a server backed by ts. The toolset needs a store, a
// fetcher and a completer.
func NewServer(ts *tools.Toolset) (*Server, error) {
	if ts == nil || ts.Store == nil {
		return nil, errors.New("mcp: document store is required")
	}
	if ts.Fetcher == nil {
		return nil, errors.New("mcp: fetcher is required")
	}
	if ts.Completer == nil {
		return nil, errors.New("mcp: completer is required")
	}

	s := &Server{
		tools:  ts,
		server: mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect starts a session on an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// canceled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
