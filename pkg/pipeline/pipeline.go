// Package pipeline composes the synthesis and patch stages into the entry
// points used by the mend CLI and by embedding hosts.
//
// # Architecture
//
// Graph synthesis runs five stages, each a pure function from the packages
// below:
//
//  1. Parse: [synth.Parse] extracts and validates the proposed graph
//  2. Sanitize: [transform.Sanitize] removes blank nodes, dangling edges, orphans
//  3. Remap: [transform.Remap] centers the graph on the anchor
//  4. Re-key: [transform.RegenerateIDs] assigns fresh UUIDs
//  5. Layout: [layout.Optimize] resizes and separates nodes
//
// The result of stages 1 and 2 depends only on the response text and the
// orphan option, so the [Runner] caches it. Stages 3 to 5 run on every call;
// in particular every synthesis hands out new ids.
//
// Patching parses the requested changes with [patch.ParseChanges] and applies
// them with [patch.Apply]; the result for a given document, response and
// threshold is cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Synthesize(ctx, "reply.md", reply, pipeline.Options{
//	    Anchor: canvas.Point{X: viewport.CenterX, Y: viewport.CenterY},
//	})
//	if err != nil {
//	    return err // PARSE_ERROR or INVALID_STRUCTURE
//	}
//	host.Insert(res.Graph)
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/canvas/layout"
	"github.com/matzehuels/mend/pkg/canvas/transform"
	mendErrors "github.com/matzehuels/mend/pkg/errors"
	"github.com/matzehuels/mend/pkg/patch"
	"github.com/matzehuels/mend/pkg/synth"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and hosts
// =============================================================================

const (
	// DefaultThreshold is the minimum similarity for a fuzzy patch match.
	DefaultThreshold = patch.DefaultThreshold

	// DefaultGap is the minimum spacing between nodes after layout.
	DefaultGap = layout.DefaultGap

	// DefaultMaxIterations bounds overlap resolution.
	DefaultMaxIterations = layout.DefaultMaxIterations

	// DefaultConcurrency is the number of responses SynthesizeAll processes
	// at once.
	DefaultConcurrency = 4
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures synthesis and patching. Zero values select the defaults
// above; orphan removal and layout are on unless disabled.
type Options struct {
	// Synthesis options
	Anchor        canvas.Point `json:"anchor" validate:"-"`
	KeepOrphans   bool         `json:"keep_orphans,omitempty"`
	SkipLayout    bool         `json:"skip_layout,omitempty"`
	Gap           float64      `json:"gap,omitempty" validate:"gte=0"`
	MaxIterations int          `json:"max_iterations,omitempty" validate:"gte=1"`

	// Patch options
	Threshold float64 `json:"threshold,omitempty" validate:"gt=0,lte=1"`

	// Runtime options (not serialized)
	Refresh     bool        `json:"-"` // skip cache reads, still write
	Concurrency int         `json:"-" validate:"gte=1"`
	Logger      *log.Logger `json:"-" validate:"-"`

	defaulted bool
}

// SetDefaults fills zero fields with their defaults. It is idempotent.
func (o *Options) SetDefaults() {
	if o.defaulted {
		return
	}
	if o.Gap == 0 {
		o.Gap = DefaultGap
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.defaulted = true
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks option ranges and reports violations as a single
// INVALID_CONFIG error. Call SetDefaults first; a zero threshold is invalid.
func (o *Options) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return mendErrors.Wrap(mendErrors.ErrCodeInvalidConfig, err, "validate options")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return mendErrors.New(mendErrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// SanitizeOptions returns the sanitizer configuration.
func (o *Options) SanitizeOptions() transform.SanitizeOptions {
	return transform.SanitizeOptions{KeepOrphans: o.KeepOrphans}
}

// LayoutOptions returns the layout configuration.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{Gap: o.Gap, MaxIterations: o.MaxIterations}
}

// =============================================================================
// Results
// =============================================================================

// Input is one response to synthesize. Source names it in logs and results.
type Input struct {
	Source   string
	Response string
}

// SynthesisResult is the outcome of synthesizing one response.
type SynthesisResult struct {
	Source string

	// Graph is ready to insert: sanitized, centered on the anchor, re-keyed
	// and laid out.
	Graph canvas.Graph

	// IDs maps the ids proposed by the model to the generated ones.
	IDs map[string]string

	Warnings synth.Warnings
	Sanitize transform.SanitizeStats
	Layout   layout.Stats

	// CacheHit reports whether the prepared graph came from the cache.
	CacheHit bool
	Duration time.Duration

	// Err is set by SynthesizeAll when this response failed.
	Err error
}

// PatchResult is the outcome of applying a response to a document.
type PatchResult struct {
	patch.Result

	// Changes lists what the response asked for, in response order.
	Changes []patch.Change

	CacheHit bool
	Duration time.Duration
}
