// Package layout tidies the geometry of a synthesized graph before it is
// placed on the host canvas.
//
// # Overview
//
// Models choose node sizes and positions without seeing the rendered result.
// Text overflows its box and boxes land on top of each other. [Optimize] runs
// three passes over a [canvas.Graph]:
//
//  1. Size estimation: text nodes that are clearly too small for their text
//     are enlarged, see [EstimateSize].
//  2. Overlap resolution: nodes closer than the gap are pushed apart, see
//     [ResolveOverlaps].
//  3. Container fitting: groups grow to enclose the nodes that were inside
//     them before layout, see [FitGroups].
//
// # Size Estimation
//
// Widths assume 8px per character plus 40px of padding, wrapping at the 500px
// maximum; heights assume 24px per wrapped line plus 40px of padding. Results
// are clamped to 200..500 by 80..400. A proposed size is only replaced when the
// estimate is more than 20% wider or 30% taller, so deliberate model choices
// survive.
//
// # Overlap Resolution
//
// Two nodes overlap when their rectangles come within Gap pixels of each other
// on both axes. Each pass visits every pair and moves both nodes of an
// overlapping pair Gap/2 apart along the line between their centers. Passes
// repeat until one finds nothing to do or MaxIterations is reached; residual
// overlap is then accepted and reported in [Stats]. A group that contains a
// node is not overlapping it.
package layout
