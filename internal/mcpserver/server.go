// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notebook shelf for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/voss/nbshelf/internal/apperr"
	"github.com/voss/nbshelf/internal/shelf"
)

// Server wraps the MCP server with shelf tools.
type Server struct {
	mcp *server.MCPServer
	svc *shelf.Service
}

// New creates a new MCP server with all shelf tools registered.
func New(svc *shelf.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"nbshelf",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("get_toc",
		mcp.WithDescription("Render the HTML table of contents for the notebook shelf."),
	), s.getTOC)

	s.mcp.AddTool(mcp.NewTool("list_notebooks",
		mcp.WithDescription("List every notebook on the shelf with checksum and size metadata."),
	), s.listNotebooks)

	s.mcp.AddTool(mcp.NewTool("read_notebook",
		mcp.WithDescription("Read the raw contents of a notebook file."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Notebook filename (e.g. Analysis.ipynb)")),
	), s.readNotebook)

	s.mcp.AddTool(mcp.NewTool("add_notebook",
		mcp.WithDescription("Add a new notebook to the shelf. The name must end with .ipynb "+
			"and must not already exist; contents are written verbatim."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Notebook filename (must end with .ipynb)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Raw notebook JSON")),
	), s.addNotebook)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	frag, err := s.svc.TOC(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(frag), nil
}

func (s *Server) listNotebooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNotebook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, _, err := s.svc.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) addNotebook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	nb, err := s.svc.Add(ctx, name, []byte(content))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrAlreadyExists):
			return mcp.NewToolResultError(fmt.Sprintf("notebook already exists: %s", name)), nil
		case errors.Is(err, apperr.ErrInvalidName):
			return mcp.NewToolResultError(fmt.Sprintf("name must end with .ipynb: %s", name)), nil
		default:
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s (checksum %s)", nb.Path, nb.Checksum)), nil
}
