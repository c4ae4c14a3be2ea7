package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/service/analysis"
)

// Common input structures for tools

// RepoInput is the base input for all repository tools.
type RepoInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Repository path. Defaults to the current directory."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// TimelineInput adds clustering options.
type TimelineInput struct {
	RepoInput
	Threshold float64 `json:"threshold,omitempty" jsonschema:"Clustering distance in timeline percent (0.1-50). Overrides preset."`
	Preset    string  `json:"preset,omitempty" jsonschema:"Threshold preset: tight, normal, loose, or very_loose. Default normal."`
}

// BucketsInput adds period granularity.
type BucketsInput struct {
	RepoInput
	Granularity string `json:"granularity,omitempty" jsonschema:"Period granularity: day, week, two_weeks, month, quarter, or year. Default week."`
}

// GroupsInput adds the grouping dimension and optional filters.
type GroupsInput struct {
	RepoInput
	GroupBy string   `json:"group_by,omitempty" jsonschema:"Grouping dimension: type, author, or date. Default type."`
	Author  string   `json:"author,omitempty" jsonschema:"Keep only analyses of commits by this author."`
	Types   []string `json:"types,omitempty" jsonschema:"Keep only analyses of these types (FEATURE, FIX, DOCS, ...)."`
}

// Helper functions

func getPath(input RepoInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func getFormat(input RepoInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleTimeline(ctx context.Context, req *mcp.CallToolRequest, input TimelineInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	layout, err := svc.Timeline(ctx, getPath(input.RepoInput), analysis.TimelineOptions{
		Threshold: input.Threshold,
		Preset:    input.Preset,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(layout, getFormat(input.RepoInput))
}

func handleBuckets(ctx context.Context, req *mcp.CallToolRequest, input BucketsInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	buckets, err := svc.Buckets(ctx, getPath(input.RepoInput), input.Granularity)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(buckets, getFormat(input.RepoInput))
}

func handleGroups(ctx context.Context, req *mcp.CallToolRequest, input GroupsInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	grouped, err := svc.Groups(ctx, getPath(input.RepoInput), analysis.GroupsOptions{
		GroupBy: input.GroupBy,
		Author:  input.Author,
		Types:   input.Types,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(grouped, getFormat(input.RepoInput))
}

func handleGenerate(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	analyses, err := svc.GenerateAnalyses(ctx, getPath(input), nil)
	if err != nil {
		return toolError(err.Error())
	}
	out := struct {
		Generated int `json:"generated" toon:"generated"`
	}{len(analyses)}
	return toolResult(out, getFormat(input))
}

func handleImpact(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	result, err := svc.Impact(ctx, getPath(input))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input))
}

func handleComplexity(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	result, err := svc.Complexity(ctx, getPath(input))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input))
}

func handleThemes(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	result, err := svc.Themes(ctx, getPath(input))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input))
}

func handleFocus(ctx context.Context, req *mcp.CallToolRequest, input RepoInput) (*mcp.CallToolResult, any, error) {
	svc := analysis.New()
	result, err := svc.Focus(ctx, getPath(input))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input))
}
