// Package canvas defines the graph model the synthesizer produces and its JSON
// Canvas wire format.
//
// # Overview
//
// A canvas is an ordered list of positioned nodes and an ordered list of edges
// connecting them. It is the host's structured state: the synthesizer turns a
// model response into a [Graph], and the host commits that graph onto its own
// canvas. All coordinates are float64 pixels with the origin at the top left
// and y growing downwards.
//
// # Core Types
//
//   - [Graph]: ordered nodes and edges
//   - [Node]: positioned rectangle of kind text, group or link
//   - [Edge]: directed connection between two node IDs
//   - [Point], [Rect]: geometry helpers used by remapping and layout
//
// # JSON Format
//
// Graphs serialize to the JSON Canvas layout:
//
//	{
//	  "nodes": [
//	    {"id": "a", "type": "text", "x": 0, "y": 0, "width": 250, "height": 60, "text": "Idea"},
//	    {"id": "g", "type": "group", "x": -40, "y": -40, "width": 600, "height": 300, "label": "Cluster"}
//	  ],
//	  "edges": [
//	    {"id": "e1", "fromNode": "a", "toNode": "b", "toEnd": "arrow"}
//	  ]
//	}
//
// On input, "kind" is accepted as an alias of "type"; output always uses
// "type".
//
// # Value Semantics
//
// Graphs are passed by value through the synthesis stages. Because the node and
// edge slices would otherwise be shared, every stage starts from [Graph.Clone]
// and never mutates its input.
package canvas
