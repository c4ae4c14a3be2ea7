// Package analyzer implements the derived-metric engines that consume an
// in-memory commit/analysis snapshot: file impact, complexity scoring,
// thematic grouping and developer focus. Engines are pure given the
// snapshot; the placeholder randomness of the original charting layer is
// replaced by diff-stat signals supplied by the commit store.
package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/chronocode/chrono/pkg/models"
)

// ImpactAnalyzer aggregates per-file change counts into a weighted
// directory tree for treemap rendering.
type ImpactAnalyzer struct {
	rootName string
}

// ImpactOption is a functional option for configuring ImpactAnalyzer.
type ImpactOption func(*ImpactAnalyzer)

// WithImpactRootName sets the display name of the tree root.
func WithImpactRootName(name string) ImpactOption {
	return func(a *ImpactAnalyzer) {
		if name != "" {
			a.rootName = name
		}
	}
}

// NewImpactAnalyzer creates a new file-impact analyzer.
func NewImpactAnalyzer(opts ...ImpactOption) *ImpactAnalyzer {
	a := &ImpactAnalyzer{rootName: "."}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// impactAccum tracks per-path change totals plus the set of commits that
// touched the path's subtree, held as a roaring bitmap of commit indexes
// so distinct counts stay cheap for wide trees.
type impactAccum struct {
	changes int
	commits *roaring.Bitmap
}

// Analyze builds the impact tree from commit diff stats. A directory's
// weight is the sum of its descendants'; its distinct-commit count is
// the cardinality of the union of its descendants' commit sets. Commits
// without diff stats contribute nothing.
func (a *ImpactAnalyzer) Analyze(repoName string, commits []models.Commit) *models.ImpactAnalysis {
	byPath := make(map[string]*impactAccum)

	for idx, c := range commits {
		for _, fc := range c.FilesChanged {
			path := strings.TrimPrefix(fc.Path, "./")
			if path == "" {
				continue
			}
			// Credit the file and every ancestor directory.
			for p := path; p != ""; p = parentDir(p) {
				acc, ok := byPath[p]
				if !ok {
					acc = &impactAccum{commits: roaring.New()}
					byPath[p] = acc
				}
				acc.changes += fc.Additions + fc.Deletions
				acc.commits.Add(uint32(idx))
			}
		}
	}

	root := &models.ImpactNode{Name: a.rootName, Path: a.rootName}
	rootCommits := roaring.New()
	var rootChanges int

	// Attach top-level entries, then recurse.
	for _, top := range childPaths(byPath, "") {
		root.Children = append(root.Children, buildNode(byPath, top))
		rootChanges += byPath[top].changes
		rootCommits.Or(byPath[top].commits)
	}
	root.Changes = rootChanges
	root.Commits = int(rootCommits.GetCardinality())

	analysis := &models.ImpactAnalysis{
		GeneratedAt: time.Now().UTC(),
		RepoName:    repoName,
		Root:        root,
	}
	analysis.Summary = summarizeImpact(analysis, byPath)
	return analysis
}

// buildNode materializes the subtree rooted at path.
func buildNode(byPath map[string]*impactAccum, path string) *models.ImpactNode {
	acc := byPath[path]
	node := &models.ImpactNode{
		Name:    baseName(path),
		Path:    path,
		Changes: acc.changes,
		Commits: int(acc.commits.GetCardinality()),
	}
	for _, child := range childPaths(byPath, path) {
		node.Children = append(node.Children, buildNode(byPath, child))
	}
	return node
}

// childPaths returns direct children of dir among accumulated paths,
// sorted for deterministic tree shape.
func childPaths(byPath map[string]*impactAccum, dir string) []string {
	var children []string
	for p := range byPath {
		if parentDir(p) == dir {
			children = append(children, p)
		}
	}
	sort.Strings(children)
	return children
}

func parentDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func baseName(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// summarizeImpact computes file-level aggregate statistics.
func summarizeImpact(analysis *models.ImpactAnalysis, byPath map[string]*impactAccum) models.ImpactSummary {
	leaves := analysis.Leaves()
	summary := models.ImpactSummary{
		TotalFiles:   len(leaves),
		TotalChanges: analysis.Root.Changes,
		TotalCommits: analysis.Root.Commits,
	}
	if len(leaves) == 0 {
		return summary
	}

	changes := make([]float64, len(leaves))
	for i, leaf := range leaves {
		changes[i] = float64(leaf.Changes)
	}
	summary.MeanChanges = stat.Mean(changes, nil)
	if len(changes) > 1 {
		summary.StdDevChanges = stat.StdDev(changes, nil)
	}
	if summary.TotalChanges > 0 {
		summary.MaxFileShare = float64(leaves[0].Changes) / float64(summary.TotalChanges)
	}

	topN := 5
	if len(leaves) < topN {
		topN = len(leaves)
	}
	for _, leaf := range leaves[:topN] {
		summary.TopFiles = append(summary.TopFiles, leaf.Path)
	}
	return summary
}
