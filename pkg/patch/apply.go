package patch

import (
	"cmp"
	"slices"
)

// Change is one requested substitution: replace the text quoted as Original
// with New. Original is what the model believes the document contains.
type Change struct {
	Original string `json:"original" yaml:"original"`
	New      string `json:"new" yaml:"new"`
}

// Hit records where an applied change landed. Span refers to the document as
// it was when the change was spliced in.
type Hit struct {
	Index  int    `json:"index"` // position of the change in the input slice
	Change Change `json:"change"`
	Span   Span   `json:"span"`
}

// Result summarizes one [Apply] call.
type Result struct {
	// Success is true iff every change was applied.
	Success bool `json:"success"`

	// Text is the document after all matched changes were spliced in.
	Text string `json:"text"`

	// Applied is the number of changes that matched.
	Applied int `json:"applied"`

	// Failed lists the changes that matched nothing, in input order.
	Failed []Change `json:"failed,omitempty"`

	// Matches lists applied changes in the order they were applied.
	Matches []Hit `json:"matches,omitempty"`
}

// Apply matches and splices every change into doc. Changes are processed by
// descending length of Original, each against the document as mutated by the
// changes before it. A change that does not match is recorded in
// Result.Failed and the batch continues.
func Apply(doc string, changes []Change, threshold float64) Result {
	order := make([]int, len(changes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(changes[b].Original), len(changes[a].Original))
	})

	res := Result{Text: doc}
	var failed []int
	for _, i := range order {
		c := changes[i]
		span := Match(res.Text, c.Original, threshold)
		if span == nil {
			failed = append(failed, i)
			continue
		}
		res.Text = res.Text[:span.Start] + c.New + res.Text[span.End:]
		res.Applied++
		res.Matches = append(res.Matches, Hit{Index: i, Change: c, Span: *span})
	}

	slices.Sort(failed)
	for _, i := range failed {
		res.Failed = append(res.Failed, changes[i])
	}
	res.Success = len(res.Failed) == 0
	return res
}
