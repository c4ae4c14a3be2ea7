// Package mcpserver exposes chrono's timeline and metric operations as
// MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all chrono tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all chrono tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "chrono",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all chrono tools to the server.
func (s *Server) registerTools() {
	// Clustered timeline layout
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timeline",
		Description: describeTimeline(),
	}, handleTimeline)

	// Period buckets
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "bucket_commits",
		Description: describeBuckets(),
	}, handleBuckets)

	// Analysis grouping
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "group_analyses",
		Description: describeGroups(),
	}, handleGroups)

	// Analysis generation
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_analyses",
		Description: describeGenerate(),
	}, handleGenerate)

	// File impact tree
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_impact",
		Description: describeImpact(),
	}, handleImpact)

	// Commit complexity scores
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, handleComplexity)

	// Development themes
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_themes",
		Description: describeThemes(),
	}, handleThemes)

	// Developer focus
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_focus",
		Description: describeFocus(),
	}, handleFocus)
}
