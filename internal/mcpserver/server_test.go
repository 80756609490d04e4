package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/voss/nbshelf/internal/shelf"
	"github.com/voss/nbshelf/internal/testutil"
	"github.com/voss/nbshelf/internal/toc"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir, store := testutil.TestShelf(t)
	svc := shelf.NewService(store, dir)
	return New(svc), dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_toc":
		result, err = srv.getTOC(ctx, req)
	case "list_notebooks":
		result, err = srv.listNotebooks(ctx, req)
	case "read_notebook":
		result, err = srv.readNotebook(ctx, req)
	case "add_notebook":
		result, err = srv.addNotebook(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetTOC(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteNotebook(t, dir, "A.ipynb")
	testutil.WriteNotebook(t, dir, "Index.ipynb")

	res := callTool(t, srv, "get_toc", nil)
	text := resultText(res)
	if !strings.HasPrefix(text, toc.Header) {
		t.Errorf("missing header in %q", text)
	}
	if !strings.Contains(text, "'A.ipynb'") {
		t.Errorf("missing entry in %q", text)
	}
	if strings.Contains(text, "'Index.ipynb'") {
		t.Error("index notebook listed")
	}
}

func TestListNotebooks(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteNotebook(t, dir, "One.ipynb")
	testutil.WriteNotebook(t, dir, "Two.ipynb")

	res := callTool(t, srv, "list_notebooks", nil)
	text := resultText(res)
	if !strings.Contains(text, "One.ipynb") || !strings.Contains(text, "Two.ipynb") {
		t.Errorf("listing missing notebooks: %q", text)
	}
}

func TestReadNotebook(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteNotebook(t, dir, "Read Me.ipynb")

	res := callTool(t, srv, "read_notebook", map[string]interface{}{"name": "Read Me.ipynb"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), `"nbformat"`) {
		t.Errorf("content = %q", resultText(res))
	}
}

func TestReadNotebook_Missing(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "read_notebook", map[string]interface{}{"name": "ghost.ipynb"})
	if !res.IsError {
		t.Error("expected error result for missing notebook")
	}
}

func TestAddNotebook(t *testing.T) {
	srv, _ := testServer(t)

	res := callTool(t, srv, "add_notebook", map[string]interface{}{
		"name":    "Fresh.ipynb",
		"content": `{"cells": []}`,
	})
	if res.IsError {
		t.Fatalf("add failed: %s", resultText(res))
	}

	// Adding again must fail.
	res = callTool(t, srv, "add_notebook", map[string]interface{}{
		"name":    "Fresh.ipynb",
		"content": `{"cells": []}`,
	})
	if !res.IsError {
		t.Error("expected error for duplicate add")
	}
}

func TestAddNotebook_BadName(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "add_notebook", map[string]interface{}{
		"name":    "wrong.txt",
		"content": "x",
	})
	if !res.IsError {
		t.Error("expected error for non-notebook name")
	}
}
