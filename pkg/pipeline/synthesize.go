package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mend/pkg/cache"
	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/canvas/layout"
	"github.com/matzehuels/mend/pkg/canvas/transform"
	"github.com/matzehuels/mend/pkg/observability"
	"github.com/matzehuels/mend/pkg/synth"
)

// prepared is the cached form of a parsed and sanitized response.
type prepared struct {
	Graph    canvas.Graph            `json:"graph"`
	Warnings synth.Warnings          `json:"warnings,omitempty"`
	Sanitize transform.SanitizeStats `json:"sanitize"`
}

// Synthesize turns one model response into a graph ready for insertion.
// Fatal problems with the response are returned as PARSE_ERROR or
// INVALID_STRUCTURE errors; everything else is reported in the result.
func (r *Runner) Synthesize(ctx context.Context, source, resp string, opts Options) (*SynthesisResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Synthesis().OnSynthesizeStart(ctx, source)
	res, err := r.synthesize(ctx, source, resp, opts)
	if err != nil {
		observability.Synthesis().OnSynthesizeComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}
	res.Duration = time.Since(start)
	observability.Synthesis().OnSynthesizeComplete(ctx, source, len(res.Graph.Nodes), len(res.Graph.Edges), res.Duration, nil)

	r.Logger.Info("synthesized graph",
		"source", source,
		"nodes", len(res.Graph.Nodes),
		"edges", len(res.Graph.Edges),
		"dropped", res.Sanitize.Removed(),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) synthesize(ctx context.Context, source, resp string, opts Options) (*SynthesisResult, error) {
	p, hit, err := r.prepare(ctx, resp, opts)
	if err != nil {
		return nil, err
	}
	for _, w := range p.Warnings {
		opts.Logger.Debug("model output issue", "source", source, "issue", w.String())
	}

	g := transform.Remap(p.Graph, opts.Anchor)
	g, ids := transform.RegenerateIDs(g)

	res := &SynthesisResult{
		Source:   source,
		IDs:      ids,
		Warnings: p.Warnings,
		Sanitize: p.Sanitize,
		CacheHit: hit,
	}
	if !opts.SkipLayout {
		g, res.Layout = layout.Optimize(g, opts.LayoutOptions())
		if res.Layout.ResidualOverlaps > 0 {
			r.Logger.Warn("layout left overlapping nodes",
				"source", source,
				"pairs", res.Layout.ResidualOverlaps,
				"iterations", res.Layout.Iterations)
		}
	}
	res.Graph = g
	return res, nil
}

// prepare parses, validates and sanitizes resp, going through the cache.
func (r *Runner) prepare(ctx context.Context, resp string, opts Options) (prepared, bool, error) {
	key := r.Keyer.PreparedKey(cache.HashString(resp), cache.PreparedKeyOpts{KeepOrphans: opts.KeepOrphans})

	var p prepared
	if r.load(ctx, "prepared", key, opts.Refresh, &p) {
		return p, true, nil
	}

	g, report, err := synth.Parse(resp)
	if err != nil {
		return prepared{}, false, err
	}
	p.Warnings = report.Warnings
	p.Graph, p.Sanitize = transform.Sanitize(g, opts.SanitizeOptions())

	r.store(ctx, "prepared", key, p, cache.TTLPrepared)
	return p, false, nil
}

// SynthesizeAll synthesizes independent responses concurrently, at most
// opts.Concurrency at a time. Results are in input order. A response that
// fails does not stop the others; its error is recorded in the result's Err
// field. The returned error is non-nil only if ctx is cancelled or the
// options are invalid.
func (r *Runner) SynthesizeAll(ctx context.Context, inputs []Input, opts Options) ([]*SynthesisResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	results := make([]*SynthesisResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Synthesize(gctx, in.Source, in.Response, opts)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				res = &SynthesisResult{Source: in.Source, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
