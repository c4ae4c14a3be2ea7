package mcpserver

import (
	"bytes"
	"context"
	"embed"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

// Guides are markdown files compiled into the binary. Each one becomes
// an MCP prompt named after its file, with its description taken from a
// YAML header.
//
//go:embed prompts/*.md
var promptFiles embed.FS

// promptGuide is one embedded guide ready for registration.
type promptGuide struct {
	Name        string
	Description string
	Body        string
}

// promptHeader is the YAML header at the top of a guide file.
type promptHeader struct {
	Description string `yaml:"description"`
}

func (s *Server) registerPrompts() {
	for _, g := range loadGuides() {
		s.server.AddPrompt(&mcp.Prompt{
			Name:        g.Name,
			Description: g.Description,
		}, serveGuide(g))
	}
}

// loadGuides reads every embedded .md file and splits off its header.
// Unreadable entries are skipped rather than failing registration.
func loadGuides() []promptGuide {
	entries, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil
	}

	guides := make([]promptGuide, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := promptFiles.ReadFile(path.Join("prompts", entry.Name()))
		if err != nil {
			continue
		}
		description, body := splitHeader(raw)
		guides = append(guides, promptGuide{
			Name:        strings.TrimSuffix(entry.Name(), ".md"),
			Description: description,
			Body:        body,
		})
	}
	return guides
}

// splitHeader separates a `---` delimited YAML header from the guide
// body. Content without a parseable header is returned whole as the
// body with an empty description.
func splitHeader(raw []byte) (description, body string) {
	const fence = "---\n"
	if !bytes.HasPrefix(raw, []byte(fence)) {
		return "", string(raw)
	}

	rest := raw[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end == -1 {
		return "", string(raw)
	}

	var header promptHeader
	if err := yaml.Unmarshal(rest[:end], &header); err != nil {
		return "", string(raw)
	}

	body = strings.TrimPrefix(string(rest[end+1+len(fence):]), "\n")
	return header.Description, body
}

// serveGuide returns a handler that replies with the guide body as a
// single user message.
func serveGuide(g promptGuide) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: g.Description,
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: g.Body},
				},
			},
		}, nil
	}
}
