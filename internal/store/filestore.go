package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/chronocode/chrono/pkg/models"
)

// analysisSchema validates analysis documents before decoding. A
// document that passes still round-trips through encoding/json, the
// schema just front-loads the error with a usable location.
const analysisSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["analyses"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "analyses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["repo_name", "title", "type", "commit_sha"],
        "properties": {
          "repo_name": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "type": {
            "enum": ["FEATURE", "DOCS", "ISSUE", "WARNING", "REFACTOR", "FIX", "TEST", "OTHER"]
          },
          "author": {"type": "string"},
          "idea": {"type": "string"},
          "description": {"type": "string"},
          "commit_sha": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// analysisDocument is the on-disk shape of a FileStore.
type analysisDocument struct {
	Version  int                     `json:"version"`
	Analyses []models.CommitAnalysis `json:"analyses"`
}

const documentVersion = 1

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(analysisSchema))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analyses.schema.json", doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("analyses.schema.json")
	})
	return compiledSchema, schemaErr
}

// FileStore persists commit analyses as a schema-validated JSON document.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore creates an analysis store backed by the JSON document at
// path. The file need not exist yet; a missing document reads as empty.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadAnalyses reads the document and returns analyses matching the
// filter. A missing document is an empty store, not an error.
func (s *FileStore) LoadAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.CommitAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	var matched []models.CommitAnalysis
	for _, a := range doc.Analyses {
		if filter.Match(a) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// SaveAnalyses replaces the stored analyses for repoName, keeping
// analyses of other repositories intact. The write is atomic via a
// temp-file rename.
func (s *FileStore) SaveAnalyses(ctx context.Context, repoName string, analyses []models.CommitAnalysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	if err != nil {
		return err
	}

	kept := make([]models.CommitAnalysis, 0, len(doc.Analyses)+len(analyses))
	for _, a := range doc.Analyses {
		if a.RepoName != repoName {
			kept = append(kept, a)
		}
	}
	kept = append(kept, analyses...)

	out := analysisDocument{Version: documentVersion, Analyses: kept}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".analyses-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) readLocked() (analysisDocument, error) {
	var doc analysisDocument

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return analysisDocument{Version: documentVersion}, nil
	}
	if err != nil {
		return doc, err
	}

	sch, err := loadSchema()
	if err != nil {
		return doc, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return doc, &DocumentError{Path: s.path, Err: err}
	}
	if err := sch.Validate(inst); err != nil {
		return doc, &DocumentError{Path: s.path, Err: err}
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, &DocumentError{Path: s.path, Err: err}
	}
	return doc, nil
}
