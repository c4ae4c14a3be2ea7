package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chronocode/chrono/internal/output"
)

func TestNewServer(t *testing.T) {
	s := NewServer("1.2.3")
	if s == nil || s.server == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestNewServer_EmptyVersion(t *testing.T) {
	if s := NewServer(""); s == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestGetPath(t *testing.T) {
	if got := getPath(RepoInput{}); got != "." {
		t.Errorf("getPath(empty) = %s, want .", got)
	}
	if got := getPath(RepoInput{Path: "/repo"}); got != "/repo" {
		t.Errorf("getPath() = %s, want /repo", got)
	}
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   output.Format
	}{
		{"empty defaults to toon", "", output.FormatTOON},
		{"json", "json", output.FormatJSON},
		{"markdown", "markdown", output.FormatMarkdown},
		{"md", "md", output.FormatMarkdown},
		{"toon explicit", "toon", output.FormatTOON},
		{"unknown defaults to toon", "xml", output.FormatTOON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getFormat(RepoInput{Format: tt.format}); got != tt.want {
				t.Errorf("getFormat(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatOutput(t *testing.T) {
	data := map[string]any{"commits": 3}

	plain, err := formatOutput(data, output.FormatTOON)
	if err != nil {
		t.Fatalf("formatOutput() error = %v", err)
	}
	if !strings.Contains(plain, "3") {
		t.Errorf("TOON output = %q", plain)
	}

	md, err := formatOutput(data, output.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(md, "```\n") || !strings.HasSuffix(md, "\n```") {
		t.Errorf("markdown output not fenced: %q", md)
	}
}

func TestToolError(t *testing.T) {
	result, _, err := toolError("boom")
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("toolError must set IsError")
	}
}

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("2.0.0")
	if err != nil {
		t.Fatalf("GenerateManifest() error = %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if m.Name != "io.github.chronocode/chrono" {
		t.Errorf("Name = %s", m.Name)
	}
	if m.Version != "2.0.0" {
		t.Errorf("Version = %s", m.Version)
	}
	if len(m.Packages) != 1 || m.Packages[0].Transport.Type != "stdio" {
		t.Error("manifest package transport must be stdio")
	}
}

func TestGenerateManifest_DefaultVersion(t *testing.T) {
	data, err := GenerateManifest("")
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Version != "0.0.0" {
		t.Errorf("Version = %s, want 0.0.0", m.Version)
	}
}

func TestSplitHeader(t *testing.T) {
	desc, body := splitHeader([]byte("---\ndescription: Test prompt\n---\n\nBody text"))
	if desc != "Test prompt" {
		t.Errorf("description = %q", desc)
	}
	if body != "Body text" {
		t.Errorf("body = %q", body)
	}

	desc, body = splitHeader([]byte("No header here"))
	if desc != "" || body != "No header here" {
		t.Errorf("plain content mishandled: %q / %q", desc, body)
	}

	desc, body = splitHeader([]byte("---\nunterminated header"))
	if desc != "" || body != "---\nunterminated header" {
		t.Errorf("unterminated header mishandled: %q / %q", desc, body)
	}
}

func TestLoadGuides(t *testing.T) {
	guides := loadGuides()
	if len(guides) == 0 {
		t.Fatal("no embedded guides")
	}
	for _, g := range guides {
		if g.Name == "" || strings.HasSuffix(g.Name, ".md") {
			t.Errorf("bad guide name %q", g.Name)
		}
		if g.Description == "" {
			t.Errorf("guide %s has no description", g.Name)
		}
		if g.Body == "" {
			t.Errorf("guide %s has no body", g.Name)
		}
	}
}

func TestHandleTimeline_EndToEnd(t *testing.T) {
	repoPath := initPromptRepo(t)

	// Handlers build their service from config discovered in the working
	// directory; run from a scratch dir so test state stays contained.
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	result, _, err := handleTimeline(context.Background(), nil, TimelineInput{
		RepoInput: RepoInput{Path: repoPath},
		Preset:    "normal",
	})
	if err != nil {
		t.Fatalf("handleTimeline() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleTimeline() tool error: %v", result.Content)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "threshold") {
		t.Errorf("timeline output missing threshold: %q", text)
	}
}

func TestHandleTimeline_MissingRepo(t *testing.T) {
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	result, _, err := handleTimeline(context.Background(), nil, TimelineInput{
		RepoInput: RepoInput{Path: filepath.Join(os.TempDir(), "definitely-absent-repo")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("missing repository must produce a tool error")
	}
}

func initPromptRepo(t *testing.T) string {
	t.Helper()
	repoPath := t.TempDir()
	repo, err := git.PlainInit(repoPath, false)
	if err != nil {
		t.Fatal(err)
	}
	w, _ := repo.Worktree()
	if err := os.WriteFile(filepath.Join(repoPath, "a.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w.Add("a.txt")
	if _, err := w.Commit("feat: first", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Now()},
	}); err != nil {
		t.Fatal(err)
	}
	return repoPath
}
