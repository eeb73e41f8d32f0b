// Package transform provides the graph transformations that prepare a
// validated model graph for insertion into the host canvas.
//
// # Overview
//
// A graph that passed validation is well-formed but rarely ready to commit.
// Models emit placeholder nodes with no text, edges to nodes they later
// dropped, coordinates relative to an imaginary origin and ids that collide
// with whatever is already on the canvas. The functions here fix each of
// those, in this order:
//
//	Sanitize ─▶ Remap ─▶ RegenerateIDs
//
// Every function takes a [canvas.Graph] value and returns a new one; the input
// is never modified.
//
// # Sanitization
//
// [Sanitize] removes blank text nodes, then edges whose endpoints vanished,
// then (unless disabled) orphan nodes with no incident edges. Group nodes are
// never treated as orphans. A graph with several nodes and no edges at all is
// read as an intentional list and kept whole.
//
// # Coordinate Remapping
//
// [Remap] translates the whole graph so the center of its bounding box lands
// on an anchor point, typically the center of the host viewport. Relative
// positions are preserved.
//
// # Identifier Regeneration
//
// [RegenerateIDs] replaces every node and edge id with a random UUID and
// rewrites edge endpoints to match, so a synthesized graph can be inserted any
// number of times without clashing.
package transform
