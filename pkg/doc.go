// Package pkg provides the core libraries of mend, an engine that reconciles
// language model output with structured host state.
//
// # Overview
//
// A model is asked for a diagram or for edits to a document. What comes back
// is free-form text that is usually close to right: JSON wrapped in prose,
// edges pointing at nodes that were never defined, quoted passages with a
// typo or different line breaks. mend turns that text into something the host
// can commit without further checks. The pkg directory is organized into:
//
//  1. Response handling: [response], [similarity]
//  2. Graph synthesis: [synth], [canvas], [canvas/transform], [canvas/layout]
//  3. Document patching: [patch]
//  4. Infrastructure: [cache], [observability], [errors], [buildinfo]
//  5. Orchestration: [pipeline]
//
// # Architecture
//
// Graph synthesis:
//
//	model response text
//	         ↓
//	    [synth] package (extract payload, validate structure)
//	         ↓
//	    [canvas/transform] package (sanitize, remap to anchor, fresh ids)
//	         ↓
//	    [canvas/layout] package (resize text nodes, resolve overlaps)
//	         ↓
//	    [canvas.Graph] ready to insert
//
// Document patching:
//
//	model response text
//	         ↓
//	    [patch.ParseChanges] (marker blocks or {original, new} lists)
//	         ↓
//	    [patch.Apply] (exact, whitespace-insensitive, then fuzzy matching)
//	         ↓
//	    patched text + list of changes that matched nothing
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//
//	res, err := runner.Synthesize(ctx, "reply", reply, pipeline.Options{
//	    Anchor: canvas.Point{X: 640, Y: 360},
//	})
//	if err != nil {
//	    return err // PARSE_ERROR or INVALID_STRUCTURE
//	}
//	host.Insert(res.Graph)
//
//	pr, _ := runner.Patch(ctx, doc, reply, pipeline.Options{})
//	host.SetText(pr.Text)
//	for _, ch := range pr.Failed {
//	    host.Flag(ch.Original)
//	}
//
// The stage packages are pure functions over values and can be used on their
// own; [pipeline] adds defaults, validation, caching, logging and batch
// fan-out.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/patch/...       # Specific package
//	go test -run Example ./pkg/...
//	MEND_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache/...
//
// [response]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/response
// [similarity]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/similarity
// [synth]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/synth
// [canvas]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/canvas
// [canvas.Graph]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/canvas#Graph
// [canvas/transform]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/canvas/transform
// [canvas/layout]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/canvas/layout
// [patch]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/patch
// [patch.ParseChanges]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/patch#ParseChanges
// [patch.Apply]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/patch#Apply
// [cache]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mend/pkg/pipeline
package pkg
