package main

import (
	"context"
	"fmt"

	"github.com/chronocode/chrono/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes chrono's timeline
and history engines as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "chrono": {
        "command": "chrono",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - timeline            Positioned, clustered commit layout
  - bucket_commits      Period buckets (week, two_weeks, month, quarter)
  - group_analyses      Analyses grouped by type, author, or date
  - generate_analyses   Classify commits and persist analyses
  - analyze_impact      Per-file change impact tree
  - analyze_complexity  Per-commit complexity and scope scores
  - analyze_themes      Thematic development phases
  - analyze_focus       Per-developer focus distributions`,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP server manifest as JSON",
				Action: runMCPManifestCmd,
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
