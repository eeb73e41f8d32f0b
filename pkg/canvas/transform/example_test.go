package transform_test

import (
	"fmt"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/canvas/transform"
)

func ExampleSanitize() {
	g := canvas.Graph{
		Nodes: []canvas.Node{
			{ID: "a", Kind: canvas.KindText, Width: 200, Height: 80, Text: "Plan"},
			{ID: "b", Kind: canvas.KindText, Width: 200, Height: 80, Text: "Build"},
			{ID: "c", Kind: canvas.KindText, Width: 200, Height: 80, Text: "Unrelated"},
			{ID: "d", Kind: canvas.KindText, Width: 200, Height: 80, Text: " "},
		},
		Edges: []canvas.Edge{{ID: "e", FromNode: "a", ToNode: "b"}},
	}
	out, stats := transform.Sanitize(g, transform.SanitizeOptions{})
	fmt.Println(len(out.Nodes), stats.EmptyNodes, stats.OrphanNodes)
	// Output: 2 1 1
}

func ExampleRemap() {
	g := canvas.Graph{Nodes: []canvas.Node{
		{ID: "a", X: 500, Y: 500, Width: 200, Height: 100},
	}}
	out := transform.Remap(g, canvas.Point{X: 0, Y: 0})
	fmt.Println(out.Nodes[0].X, out.Nodes[0].Y)
	// Output: -100 -50
}
