package layout

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/mend/pkg/canvas"
)

// Defaults for [Options].
const (
	DefaultGap           = 30
	DefaultMaxIterations = 50
)

// Size estimation constants, in pixels.
const (
	charWidth  = 8
	lineHeight = 24
	paddingX   = 40
	paddingY   = 40

	MinWidth  = 200
	MaxWidth  = 500
	MinHeight = 80
	MaxHeight = 400

	widthTolerance  = 1.2
	heightTolerance = 1.3
)

// GroupPadding is the margin kept between a group's border and its members.
const GroupPadding = 20

// Options configures [Optimize].
type Options struct {
	// Gap is the minimum distance kept between the borders of two nodes.
	// Values of 0 or below use DefaultGap.
	Gap float64

	// MaxIterations bounds the number of overlap resolution passes.
	// Values below 1 use DefaultMaxIterations.
	MaxIterations int

	// SkipResize disables size estimation for text nodes.
	SkipResize bool

	// SkipGroups disables growing groups around their members.
	SkipGroups bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Gap: DefaultGap, MaxIterations: DefaultMaxIterations}
}

func (o Options) gap() float64 {
	if o.Gap <= 0 {
		return DefaultGap
	}
	return o.Gap
}

func (o Options) iterations() int {
	if o.MaxIterations < 1 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

// Stats reports what [Optimize] changed.
type Stats struct {
	// Resized is the number of text nodes whose size estimate replaced the
	// proposed size.
	Resized int

	// Iterations is the number of overlap passes run, including the final
	// clean pass when one was reached.
	Iterations int

	// ResidualOverlaps is the number of node pairs still overlapping when
	// layout finished.
	ResidualOverlaps int

	// GroupsGrown is the number of groups enlarged to fit their members.
	GroupsGrown int
}

// Optimize resizes text nodes, separates overlapping nodes and fits groups
// around their members. The input graph is not modified.
func Optimize(g canvas.Graph, opts Options) (canvas.Graph, Stats) {
	var stats Stats
	out := g.Clone()
	members := Membership(out)

	if !opts.SkipResize {
		stats.Resized = resize(out.Nodes)
	}

	skip := func(a, b int) bool {
		return contains(out.Nodes, a, b) || contains(out.Nodes, b, a) ||
			members.has(out.Nodes[a].ID, out.Nodes[b].ID) ||
			members.has(out.Nodes[b].ID, out.Nodes[a].ID)
	}
	stats.Iterations = resolve(out.Nodes, opts.gap(), opts.iterations(), skip)

	if !opts.SkipGroups {
		stats.GroupsGrown = fit(out.Nodes, members)
	}
	stats.ResidualOverlaps = countOverlaps(out.Nodes, opts.gap(), skip)
	return out, stats
}

// =============================================================================
// Size estimation
// =============================================================================

// EstimateSize returns the width and height a text node needs to show text
// without overflowing.
func EstimateSize(text string) (width, height float64) {
	perLine := (MaxWidth - paddingX) / charWidth
	longest, lines := 0, 0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(strings.TrimRight(line, " \t\r"))
		longest = max(longest, n)
		lines += max(1, (n+perLine-1)/perLine)
	}
	width = clamp(float64(longest*charWidth+paddingX), MinWidth, MaxWidth)
	height = clamp(float64(lines*lineHeight+paddingY), MinHeight, MaxHeight)
	return width, height
}

func resize(nodes []canvas.Node) int {
	resized := 0
	for i := range nodes {
		n := &nodes[i]
		if !n.IsText() {
			continue
		}
		w, h := EstimateSize(n.Text)
		changed := false
		if w > n.Width*widthTolerance {
			n.Width = w
			changed = true
		}
		if h > n.Height*heightTolerance {
			n.Height = h
			changed = true
		}
		if changed {
			resized++
		}
	}
	return resized
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// =============================================================================
// Overlap resolution
// =============================================================================

// ResolveOverlaps pushes apart nodes that are closer than opts.Gap. Pairs in
// which a group contains the other node are left alone. It returns the new
// graph, the number of passes run, and the number of pairs still overlapping.
func ResolveOverlaps(g canvas.Graph, opts Options) (canvas.Graph, int, int) {
	out := g.Clone()
	skip := func(a, b int) bool {
		return contains(out.Nodes, a, b) || contains(out.Nodes, b, a)
	}
	iterations := resolve(out.Nodes, opts.gap(), opts.iterations(), skip)
	return out, iterations, countOverlaps(out.Nodes, opts.gap(), skip)
}

func resolve(nodes []canvas.Node, gap float64, maxIter int, skip func(a, b int) bool) int {
	for iter := 1; iter <= maxIter; iter++ {
		moved := false
		for a := range nodes {
			for b := a + 1; b < len(nodes); b++ {
				if skip(a, b) || !overlaps(nodes[a], nodes[b], gap) {
					continue
				}
				push(&nodes[a], &nodes[b], gap)
				moved = true
			}
		}
		if !moved {
			return iter
		}
	}
	return maxIter
}

// overlaps reports whether a and b come within gap of each other on both axes.
func overlaps(a, b canvas.Node, gap float64) bool {
	return a.X < b.X+b.Width+gap && b.X < a.X+a.Width+gap &&
		a.Y < b.Y+b.Height+gap && b.Y < a.Y+a.Height+gap
}

// push moves a and b gap/2 each, away from one another along the line
// between their centers. Coincident centers separate along +x.
func push(a, b *canvas.Node, gap float64) {
	d := b.Center().Sub(a.Center())
	dist := d.Len()
	ux, uy := 1.0, 0.0
	if dist > 0 {
		ux, uy = d.X/dist, d.Y/dist
	}
	step := gap / 2
	if step == 0 {
		step = 1
	}
	a.X -= ux * step
	a.Y -= uy * step
	b.X += ux * step
	b.Y += uy * step
}

func countOverlaps(nodes []canvas.Node, gap float64, skip func(a, b int) bool) int {
	n := 0
	for a := range nodes {
		for b := a + 1; b < len(nodes); b++ {
			if !skip(a, b) && overlaps(nodes[a], nodes[b], gap) {
				n++
			}
		}
	}
	return n
}

// contains reports whether nodes[outer] is a group enclosing nodes[inner].
func contains(nodes []canvas.Node, outer, inner int) bool {
	return nodes[outer].IsGroup() && nodes[outer].Rect().Contains(nodes[inner].Rect())
}

// =============================================================================
// Container fitting
// =============================================================================

// Members maps a group id to the ids of the nodes it contains.
type Members map[string][]string

func (m Members) has(group, id string) bool {
	return slices.Contains(m[group], id)
}

// Membership assigns every node to each group whose rectangle contains the
// node's center.
func Membership(g canvas.Graph) Members {
	m := make(Members)
	for _, grp := range g.Nodes {
		if !grp.IsGroup() {
			continue
		}
		r := grp.Rect()
		for _, n := range g.Nodes {
			if n.ID != grp.ID && r.ContainsPoint(n.Center()) {
				m[grp.ID] = append(m[grp.ID], n.ID)
			}
		}
	}
	return m
}

// FitGroups grows each group in g so that it encloses, with GroupPadding on
// every side, the nodes listed for it in members. Groups never shrink. It
// returns the new graph and the number of groups that grew.
func FitGroups(g canvas.Graph, members Members) (canvas.Graph, int) {
	out := g.Clone()
	return out, fit(out.Nodes, members)
}

func fit(nodes []canvas.Node, members Members) int {
	index := make(map[string]int, len(nodes))
	var groups []int
	for i, n := range nodes {
		index[n.ID] = i
		if n.IsGroup() {
			groups = append(groups, i)
		}
	}
	// Inner groups first so their growth propagates outwards.
	slices.SortStableFunc(groups, func(a, b int) int {
		return cmp.Compare(area(nodes[a]), area(nodes[b]))
	})

	grown := 0
	for _, gi := range groups {
		grp := &nodes[gi]
		ids := members[grp.ID]
		if len(ids) == 0 {
			continue
		}
		have := grp.Rect()
		need := have
		for _, id := range ids {
			if i, ok := index[id]; ok {
				need = need.Union(nodes[i].Rect().Inset(GroupPadding))
			}
		}
		if need == have {
			continue
		}
		grp.X, grp.Y = need.MinX, need.MinY
		grp.Width, grp.Height = need.Width(), need.Height()
		grown++
	}
	return grown
}

func area(n canvas.Node) float64 { return n.Width * n.Height }
