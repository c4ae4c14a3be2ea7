package models

import (
	"sort"
	"time"
)

// TreemapParentRetention is the fraction of a directory's weight the
// directory cell keeps for itself when flattened; children share the rest
// so they remain visually dominant.
const TreemapParentRetention = 0.2

// ImpactNode is one node of the file-impact directory tree. A leaf is a
// file; an interior node is a directory whose Changes is the sum of its
// descendants'.
type ImpactNode struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Changes  int           `json:"changes"`
	Commits  int           `json:"commits"` // distinct commits touching the subtree
	Children []*ImpactNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node represents a file.
func (n *ImpactNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// TreemapCell is a flattened impact node carrying a render weight.
type TreemapCell struct {
	Path   string  `json:"path"`
	Depth  int     `json:"depth"`
	Weight float64 `json:"weight"`
	IsDir  bool    `json:"is_dir"`
}

// Flatten converts the subtree rooted at n into treemap cells. Each
// directory keeps TreemapParentRetention of its own weight and its
// children divide the remainder proportionally to their change counts.
func (n *ImpactNode) Flatten() []TreemapCell {
	var cells []TreemapCell
	n.flattenInto(&cells, float64(n.Changes), 0)
	return cells
}

func (n *ImpactNode) flattenInto(cells *[]TreemapCell, weight float64, depth int) {
	if n.IsLeaf() {
		*cells = append(*cells, TreemapCell{
			Path:   n.Path,
			Depth:  depth,
			Weight: weight,
		})
		return
	}

	*cells = append(*cells, TreemapCell{
		Path:   n.Path,
		Depth:  depth,
		Weight: weight * TreemapParentRetention,
		IsDir:  true,
	})

	childBudget := weight * (1 - TreemapParentRetention)
	var childChanges int
	for _, c := range n.Children {
		childChanges += c.Changes
	}
	if childChanges == 0 {
		return
	}
	for _, c := range n.Children {
		share := childBudget * float64(c.Changes) / float64(childChanges)
		c.flattenInto(cells, share, depth+1)
	}
}

// ImpactSummary provides aggregate statistics for an impact analysis.
type ImpactSummary struct {
	TotalFiles    int      `json:"total_files"`
	TotalChanges  int      `json:"total_changes"`
	TotalCommits  int      `json:"total_commits"`
	MaxFileShare  float64  `json:"max_file_share"` // largest single-file fraction of all changes
	TopFiles      []string `json:"top_files"`
	MeanChanges   float64  `json:"mean_changes_per_file"`
	StdDevChanges float64  `json:"stddev_changes_per_file"`
}

// ImpactAnalysis is the file-impact aggregation result.
type ImpactAnalysis struct {
	GeneratedAt time.Time     `json:"generated_at"`
	RepoName    string        `json:"repo_name"`
	Root        *ImpactNode   `json:"root"`
	Summary     ImpactSummary `json:"summary"`
}

// Leaves returns all file nodes in the tree sorted by change count
// descending, with path as tiebreaker for determinism.
func (a *ImpactAnalysis) Leaves() []*ImpactNode {
	var leaves []*ImpactNode
	var walk func(n *ImpactNode)
	walk = func(n *ImpactNode) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if a.Root != nil {
		walk(a.Root)
	}
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].Changes != leaves[j].Changes {
			return leaves[i].Changes > leaves[j].Changes
		}
		return leaves[i].Path < leaves[j].Path
	})
	return leaves
}
