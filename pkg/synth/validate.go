package synth

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/errors"
)

// =============================================================================
// Warnings
// =============================================================================

// WarningCode classifies a recoverable validation issue.
type WarningCode string

const (
	WarnDanglingEdge  WarningCode = "dangling_edge"
	WarnInvalidSide   WarningCode = "invalid_side"
	WarnInvalidEnd    WarningCode = "invalid_end"
	WarnDuplicateEdge WarningCode = "duplicate_edge"
)

// Warning is one recoverable issue found while validating.
type Warning struct {
	Code    WarningCode
	Edge    string // id of the offending edge
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: edge %q: %s", w.Code, w.Edge, w.Message)
}

// Warnings is the list of issues found by [Validate], in discovery order.
type Warnings []Warning

// Count returns the number of warnings with the given code.
func (ws Warnings) Count(code WarningCode) int {
	n := 0
	for _, w := range ws {
		if w.Code == code {
			n++
		}
	}
	return n
}

// =============================================================================
// Validation
// =============================================================================

// Validate converts a decoded JSON value into a typed graph.
//
// Structural problems are fatal and return an [errors.ErrCodeStructure]
// error: a non-object root, missing or non-list nodes, a node without a
// string id, a missing or non-numeric coordinate, a non-positive size, an
// unknown node type, a duplicate node id, or an edge without id or endpoints.
// Edges whose endpoints do not resolve, unknown side or end values, and
// repeated edge ids are recorded as warnings instead; the edge is kept and
// invalid side or end values are cleared.
//
// Validating the wire form of a graph returned by Validate yields the same
// graph.
func Validate(v any) (canvas.Graph, Warnings, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return canvas.Graph{}, nil, structural("root must be an object, got %s", typeName(v))
	}

	rawNodes, ok := root["nodes"]
	if !ok {
		return canvas.Graph{}, nil, structural("missing nodes")
	}
	nodeList, ok := rawNodes.([]any)
	if !ok {
		return canvas.Graph{}, nil, structural("nodes must be a list, got %s", typeName(rawNodes))
	}

	var edgeList []any
	if rawEdges, ok := root["edges"]; ok && rawEdges != nil {
		if edgeList, ok = rawEdges.([]any); !ok {
			return canvas.Graph{}, nil, structural("edges must be a list, got %s", typeName(rawEdges))
		}
	}

	g := canvas.Graph{
		Nodes: make([]canvas.Node, 0, len(nodeList)),
		Edges: make([]canvas.Edge, 0, len(edgeList)),
	}
	seen := make(map[string]struct{}, len(nodeList))
	for i, raw := range nodeList {
		n, err := validateNode(i, raw)
		if err != nil {
			return canvas.Graph{}, nil, err
		}
		if _, dup := seen[n.ID]; dup {
			return canvas.Graph{}, nil, structural("node %d: duplicate id %q", i, n.ID)
		}
		seen[n.ID] = struct{}{}
		g.Nodes = append(g.Nodes, n)
	}

	var warnings Warnings
	edgeIDs := make(map[string]struct{}, len(edgeList))
	for i, raw := range edgeList {
		e, ws, err := validateEdge(i, raw, seen)
		if err != nil {
			return canvas.Graph{}, nil, err
		}
		if _, dup := edgeIDs[e.ID]; dup {
			ws = append(ws, Warning{Code: WarnDuplicateEdge, Edge: e.ID, Message: "id used by an earlier edge"})
		}
		edgeIDs[e.ID] = struct{}{}
		warnings = append(warnings, ws...)
		g.Edges = append(g.Edges, e)
	}
	return g, warnings, nil
}

func validateNode(i int, raw any) (canvas.Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return canvas.Node{}, structural("node %d: must be an object, got %s", i, typeName(raw))
	}

	id, err := requiredString(obj, "id")
	if err != nil {
		return canvas.Node{}, structural("node %d: %v", i, err)
	}
	n := canvas.Node{ID: id}
	fail := func(format string, args ...any) (canvas.Node, error) {
		return canvas.Node{}, structural("node %q: %s", id, fmt.Sprintf(format, args...))
	}

	kind, err := nodeKind(obj)
	if err != nil {
		return fail("%v", err)
	}
	n.Kind = kind

	for _, f := range []struct {
		key      string
		dst      *float64
		positive bool
	}{
		{"x", &n.X, false},
		{"y", &n.Y, false},
		{"width", &n.Width, true},
		{"height", &n.Height, true},
	} {
		raw, ok := obj[f.key]
		if !ok {
			return fail("missing %s", f.key)
		}
		val, ok := number(raw)
		if !ok {
			return fail("%s must be a number, got %s", f.key, typeName(raw))
		}
		if f.positive && val <= 0 {
			return fail("%s must be positive, got %v", f.key, val)
		}
		*f.dst = val
	}

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"text", &n.Text},
		{"label", &n.Label},
		{"url", &n.URL},
		{"color", &n.Color},
	} {
		if err := optionalString(obj, f.key, f.dst); err != nil {
			return fail("%v", err)
		}
	}
	return n, nil
}

func nodeKind(obj map[string]any) (canvas.Kind, error) {
	key := "type"
	raw, ok := obj[key]
	if !ok {
		key = "kind"
		raw, ok = obj[key]
	}
	if !ok || raw == nil {
		return canvas.KindText, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, typeName(raw))
	}
	k := canvas.Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown %s %q", key, s)
	}
	return k, nil
}

func validateEdge(i int, raw any, nodes map[string]struct{}) (canvas.Edge, Warnings, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return canvas.Edge{}, nil, structural("edge %d: must be an object, got %s", i, typeName(raw))
	}

	var e canvas.Edge
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"id", &e.ID},
		{"fromNode", &e.FromNode},
		{"toNode", &e.ToNode},
	} {
		s, err := requiredString(obj, f.key)
		if err != nil {
			return canvas.Edge{}, nil, structural("edge %d: %v", i, err)
		}
		*f.dst = s
	}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"label", &e.Label},
		{"color", &e.Color},
	} {
		if err := optionalString(obj, f.key, f.dst); err != nil {
			return canvas.Edge{}, nil, structural("edge %q: %v", e.ID, err)
		}
	}

	var ws Warnings
	warn := func(code WarningCode, format string, args ...any) {
		ws = append(ws, Warning{Code: code, Edge: e.ID, Message: fmt.Sprintf(format, args...)})
	}
	for _, end := range []struct {
		key string
		id  string
	}{
		{"fromNode", e.FromNode},
		{"toNode", e.ToNode},
	} {
		if _, ok := nodes[end.id]; !ok {
			warn(WarnDanglingEdge, "%s %q does not exist", end.key, end.id)
		}
	}

	for _, f := range []struct {
		key string
		dst *canvas.Side
	}{
		{"fromSide", &e.FromSide},
		{"toSide", &e.ToSide},
	} {
		raw, ok := obj[f.key]
		if !ok || raw == nil {
			continue
		}
		s, _ := raw.(string)
		if side := canvas.Side(s); side.Valid() && s != "" {
			*f.dst = side
		} else {
			warn(WarnInvalidSide, "%s %v cleared", f.key, raw)
		}
	}

	for _, f := range []struct {
		key string
		dst *canvas.End
	}{
		{"fromEnd", &e.FromEnd},
		{"toEnd", &e.ToEnd},
	} {
		raw, ok := obj[f.key]
		if !ok || raw == nil {
			continue
		}
		s, _ := raw.(string)
		if end := canvas.End(s); end.Valid() && s != "" {
			*f.dst = end
		} else {
			warn(WarnInvalidEnd, "%s %v cleared", f.key, raw)
		}
	}
	return e, ws, nil
}

// =============================================================================
// Field helpers
// =============================================================================

func structural(format string, args ...any) error {
	return errors.New(errors.ErrCodeStructure, format, args...)
}

func requiredString(obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, typeName(raw))
	}
	if s == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

func optionalString(obj map[string]any, key string, dst *string) error {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%s must be a string, got %s", key, typeName(raw))
	}
	*dst = s
	return nil
}

// number accepts the numeric representations a JSON or YAML decoder produces.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
