package layout_test

import (
	"fmt"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/canvas/layout"
)

func ExampleEstimateSize() {
	w, h := layout.EstimateSize("A short note")
	fmt.Println(w, h)
	// Output: 200 80
}

func ExampleOptimize() {
	g := canvas.Graph{Nodes: []canvas.Node{
		{ID: "a", Kind: canvas.KindText, Width: 200, Height: 80, Text: "one"},
		{ID: "b", Kind: canvas.KindText, Width: 200, Height: 80, Text: "two"},
	}}
	_, stats := layout.Optimize(g, layout.DefaultOptions())
	fmt.Println(stats.ResidualOverlaps)
	// Output: 0
}
