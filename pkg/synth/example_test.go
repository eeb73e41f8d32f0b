package synth_test

import (
	"fmt"

	"github.com/matzehuels/mend/pkg/synth"
)

func ExampleParse() {
	resp := "Here is a small graph:\n```json\n" +
		`{"nodes": [{"id": "a", "x": 0, "y": 0, "width": 200, "height": 80, "text": "Idea"}], "edges": []}` +
		"\n```"
	g, report, err := synth.Parse(resp)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(g.Nodes), g.Nodes[0].Kind, len(report.Warnings))
	// Output: 1 text 0
}

func ExampleParse_invalid() {
	_, _, err := synth.Parse("Sorry, I can only describe the graph in words.")
	fmt.Println(err)
	// Output: PARSE_ERROR: no JSON payload in response
}
