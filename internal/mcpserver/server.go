// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the project catalog to LLM clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/projectservice"
)

const formatURI = "showcase://catalog-format"

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp *server.MCPServer
	svc *projectservice.Service
}

// New creates a new MCP server with all catalog tools registered.
func New(svc *projectservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Showcase",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Search the project catalog. Every argument is optional; "+
			"results come back in display order."),
		mcp.WithString("query", mcp.Description("Case-insensitive text matched against name, description and tags")),
		mcp.WithString("status", mcp.Description("Exact status, e.g. stable or in-progress")),
		mcp.WithString("tag", mcp.Description("Exact tag")),
		mcp.WithString("category", mcp.Description("Exact category, e.g. macro or installer")),
		mcp.WithString("sort", mcp.Description("status (default), recent or name")),
	), s.searchProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Return one project with all of its fields."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag used in the catalog."),
	), s.listTags)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Catalog Format",
			mcp.WithResourceDescription("Shape of the projects.json catalog file."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

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

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := models.DefaultFilterState()
	if v, err := req.RequireString("query"); err == nil {
		st.Query = v
	}
	for key, field := range map[string]*string{
		"status":   &st.Status,
		"tag":      &st.Tag,
		"category": &st.Category,
		"sort":     &st.Sort,
	} {
		if v, err := req.RequireString(key); err == nil && v != "" {
			*field = v
		}
	}
	if err := st.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items, err := s.svc.List(ctx, st)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no projects match"), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.Tags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags"), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     CatalogFormatContract,
		},
	}, nil
}
