package transform

import (
	"github.com/google/uuid"

	"github.com/matzehuels/mend/pkg/canvas"
)

// RegenerateIDs gives every node and edge a fresh random (version 4) UUID and
// rewrites edge endpoints through the old-to-new node mapping, which is also
// returned. Endpoints that name no node of g are left unchanged; run
// [Sanitize] first to guarantee every endpoint resolves.
func RegenerateIDs(g canvas.Graph) (canvas.Graph, map[string]string) {
	out := g.Clone()
	mapping := make(map[string]string, len(out.Nodes))
	for i := range out.Nodes {
		id := uuid.NewString()
		mapping[out.Nodes[i].ID] = id
		out.Nodes[i].ID = id
	}
	for i := range out.Edges {
		e := &out.Edges[i]
		e.ID = uuid.NewString()
		if id, ok := mapping[e.FromNode]; ok {
			e.FromNode = id
		}
		if id, ok := mapping[e.ToNode]; ok {
			e.ToNode = id
		}
	}
	return out, mapping
}
