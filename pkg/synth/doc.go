// Package synth turns a model response into a validated canvas graph.
//
// # Pipeline Position
//
// synth is the first stage of graph synthesis:
//
//	response text ─▶ Extract ─▶ json decode ─▶ Validate ─▶ canvas.Graph
//
// The graph it returns is structurally sound (every node has an id, a position
// and a positive size) but has not been cleaned up: blank nodes, orphans and
// dangling edges are still present and are handled by
// [github.com/matzehuels/mend/pkg/canvas/transform].
//
// # Errors
//
// A response that contains no decodable JSON fails with
// [errors.ErrCodeParse]; one that decodes but is not shaped like a graph fails
// with [errors.ErrCodeStructure]. Both are fatal: no partial graph is
// returned. Softer problems (edges pointing at unknown nodes, unknown sides,
// repeated edge ids) are collected as [Warnings] and the graph is kept.
//
// # Example
//
//	g, report, err := synth.Parse(resp)
//	if err != nil {
//	    return err
//	}
//	for _, w := range report.Warnings {
//	    log.Warn("model output", "issue", w)
//	}
package synth
