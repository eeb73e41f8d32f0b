package transform

import "github.com/matzehuels/mend/pkg/canvas"

// Remap translates every node by the same offset so that the center of the
// graph's bounding box equals anchor. Sizes and relative positions are
// unchanged. An empty graph is returned as is.
func Remap(g canvas.Graph, anchor canvas.Point) canvas.Graph {
	out := g.Clone()
	bounds, ok := out.Bounds()
	if !ok {
		return out
	}
	d := anchor.Sub(bounds.Center())
	for i := range out.Nodes {
		out.Nodes[i].X += d.X
		out.Nodes[i].Y += d.Y
	}
	return out
}
