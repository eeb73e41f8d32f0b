package canvas

import (
	"encoding/json"
	"math"
)

// =============================================================================
// Enumerations
// =============================================================================

// Kind is the node type.
type Kind string

const (
	KindText  Kind = "text"
	KindGroup Kind = "group"
	KindLink  Kind = "link"
)

// Valid reports whether k is a known node kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindGroup, KindLink:
		return true
	}
	return false
}

// Side is the node side an edge attaches to. The zero value lets the host pick.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Valid reports whether s is empty or a known side.
func (s Side) Valid() bool {
	switch s {
	case "", SideTop, SideRight, SideBottom, SideLeft:
		return true
	}
	return false
}

// End is the marker drawn at an edge endpoint.
type End string

const (
	EndNone  End = "none"
	EndArrow End = "arrow"
)

// Valid reports whether e is empty or a known marker.
func (e End) Valid() bool {
	switch e {
	case "", EndNone, EndArrow:
		return true
	}
	return false
}

// =============================================================================
// Node
// =============================================================================

// Node is a positioned rectangle on the canvas. Width and Height are always
// positive in a validated graph.
type Node struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text,omitempty"`  // body of text nodes
	Label  string  `json:"label,omitempty"` // title of group nodes
	URL    string  `json:"url,omitempty"`   // target of link nodes
	Color  string  `json:"color,omitempty"`
}

// UnmarshalJSON decodes a node, accepting "kind" where "type" is absent.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var aux struct {
		plain
		Alias Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = Node(aux.plain)
	if n.Kind == "" {
		n.Kind = aux.Alias
	}
	return nil
}

// IsGroup reports whether n is a group container.
func (n Node) IsGroup() bool { return n.Kind == KindGroup }

// IsText reports whether n is a text node. Nodes without a kind are text.
func (n Node) IsText() bool { return n.Kind == KindText || n.Kind == "" }

// Rect returns the node's bounding rectangle.
func (n Node) Rect() Rect {
	return Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.Width, MaxY: n.Y + n.Height}
}

// Center returns the midpoint of the node.
func (n Node) Center() Point { return n.Rect().Center() }

// =============================================================================
// Edge
// =============================================================================

// Edge connects FromNode to ToNode.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	FromSide Side   `json:"fromSide,omitempty"`
	ToSide   Side   `json:"toSide,omitempty"`
	FromEnd  End    `json:"fromEnd,omitempty"`
	ToEnd    End    `json:"toEnd,omitempty"`
	Label    string `json:"label,omitempty"`
	Color    string `json:"color,omitempty"`
}

// =============================================================================
// Graph
// =============================================================================

// Graph is an ordered collection of nodes and edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of g. Empty slices stay non-nil so the copy
// serializes as [] rather than null.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Empty reports whether g has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// NodeIDs returns the set of node IDs in g.
func (g Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Degrees counts incident edges per node ID. Edges whose endpoints do not
// resolve still count for the endpoint that does.
func (g Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		deg[e.FromNode]++
		if e.ToNode != e.FromNode {
			deg[e.ToNode]++
		}
	}
	return deg
}

// Bounds returns the smallest rectangle enclosing every node. It reports false
// for an empty graph.
func (g Graph) Bounds() (Rect, bool) {
	if len(g.Nodes) == 0 {
		return Rect{}, false
	}
	r := g.Nodes[0].Rect()
	for _, n := range g.Nodes[1:] {
		r = r.Union(n.Rect())
	}
	return r, true
}

// =============================================================================
// Geometry
// =============================================================================

// Point is a canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest rectangle enclosing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, s.MinX),
		MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX),
		MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

// Inset returns r grown by d on every side; a negative d shrinks it.
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Contains reports whether s lies entirely within r.
func (r Rect) Contains(s Rect) bool {
	return s.MinX >= r.MinX && s.MinY >= r.MinY && s.MaxX <= r.MaxX && s.MaxY <= r.MaxY
}

// ContainsPoint reports whether p lies within r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
