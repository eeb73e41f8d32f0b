package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/mend/pkg/cache"
	"github.com/matzehuels/mend/pkg/observability"
	"github.com/matzehuels/mend/pkg/patch"
)

// cachedPatch is the cached form of a patch run.
type cachedPatch struct {
	Result  patch.Result   `json:"result"`
	Changes []patch.Change `json:"changes"`
}

// Patch parses the changes requested by resp and applies them to doc. A
// response without recognizable changes yields a successful result with
// nothing applied; unmatched changes are listed in Failed.
func (r *Runner) Patch(ctx context.Context, doc, resp string, opts Options) (*PatchResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := r.Keyer.PatchKey(cache.HashString(doc), cache.HashString(resp), cache.PatchKeyOpts{Threshold: opts.Threshold})

	var cp cachedPatch
	if r.load(ctx, "patch", key, opts.Refresh, &cp) {
		res := &PatchResult{Result: cp.Result, Changes: cp.Changes, CacheHit: true, Duration: time.Since(start)}
		r.logPatch(res)
		return res, nil
	}

	changes := patch.ParseChanges(resp)
	if len(changes) == 0 {
		r.Logger.Warn("response contains no changes")
	}
	res := r.apply(ctx, doc, changes, opts, start)
	r.store(ctx, "patch", key, cachedPatch{Result: res.Result, Changes: changes}, cache.TTLPatch)
	r.logPatch(res)
	return res, nil
}

// ApplyChanges applies an explicit list of changes to doc, bypassing the
// cache. It serves callers that let a user pick a subset of parsed changes.
func (r *Runner) ApplyChanges(ctx context.Context, doc string, changes []patch.Change, opts Options) (*PatchResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := r.apply(ctx, doc, changes, opts, time.Now())
	r.logPatch(res)
	return res, nil
}

func (r *Runner) apply(ctx context.Context, doc string, changes []patch.Change, opts Options, start time.Time) *PatchResult {
	observability.Patch().OnPatchStart(ctx, len(changes))
	result := patch.Apply(doc, changes, opts.Threshold)
	res := &PatchResult{Result: result, Changes: changes, Duration: time.Since(start)}
	observability.Patch().OnPatchComplete(ctx, result.Applied, len(result.Failed), res.Duration, nil)

	for _, m := range result.Matches {
		opts.Logger.Debug("matched change",
			"index", m.Index,
			"strategy", m.Span.Strategy,
			"score", m.Span.Score)
	}
	return res
}

func (r *Runner) logPatch(res *PatchResult) {
	r.Logger.Info("applied patch",
		"applied", res.Applied,
		"failed", len(res.Failed),
		"cached", res.CacheHit,
		"duration", res.Duration)
}
