package transform

import (
	"strings"

	"github.com/matzehuels/mend/pkg/canvas"
)

// SanitizeOptions configures [Sanitize].
//
// The zero value applies every cleanup step.
type SanitizeOptions struct {
	// KeepOrphans disables removal of nodes without incident edges.
	KeepOrphans bool
}

// SanitizeStats counts what [Sanitize] removed. The counts are diagnostics
// only.
type SanitizeStats struct {
	// EmptyNodes is the number of text nodes dropped for having no text.
	EmptyNodes int

	// DanglingEdges is the number of edges dropped because an endpoint did
	// not resolve, either from the start or after empty nodes were removed.
	DanglingEdges int

	// OrphanNodes is the number of non-group nodes dropped for having no
	// incident edges.
	OrphanNodes int
}

// Removed returns the total number of nodes and edges dropped.
func (s SanitizeStats) Removed() int {
	return s.EmptyNodes + s.DanglingEdges + s.OrphanNodes
}

// Sanitize removes content that should not reach the canvas:
//
//  1. text nodes whose text is empty or only whitespace;
//  2. edges whose source or target is not a node of the graph;
//  3. non-group nodes with no incident edges, unless opts.KeepOrphans is set.
//     When the graph has no edges left and more than one node, every node is
//     kept: a set of unconnected notes is a list, not a collection of orphans.
//
// After Sanitize every edge endpoint resolves and no text node is blank.
func Sanitize(g canvas.Graph, opts SanitizeOptions) (canvas.Graph, SanitizeStats) {
	var stats SanitizeStats
	out := canvas.Graph{
		Nodes: make([]canvas.Node, 0, len(g.Nodes)),
		Edges: make([]canvas.Edge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		if n.IsText() && strings.TrimSpace(n.Text) == "" {
			stats.EmptyNodes++
			continue
		}
		out.Nodes = append(out.Nodes, n)
	}

	ids := out.NodeIDs()
	for _, e := range g.Edges {
		_, okFrom := ids[e.FromNode]
		_, okTo := ids[e.ToNode]
		if !okFrom || !okTo {
			stats.DanglingEdges++
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	if opts.KeepOrphans || (len(out.Edges) == 0 && len(out.Nodes) > 1) {
		return out, stats
	}

	deg := out.Degrees()
	kept := out.Nodes[:0]
	for _, n := range out.Nodes {
		if !n.IsGroup() && deg[n.ID] == 0 {
			stats.OrphanNodes++
			continue
		}
		kept = append(kept, n)
	}
	out.Nodes = kept
	return out, stats
}
