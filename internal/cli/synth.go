package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/errors"
	"github.com/matzehuels/mend/pkg/pipeline"
	"github.com/matzehuels/mend/pkg/synth"
)

// canvasExt is the file extension of JSON Canvas documents.
const canvasExt = ".canvas"

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// synthFlags holds the command-line flags for the synth command. Flags only
// override the config file when set explicitly.
type synthFlags struct {
	anchorX     float64
	anchorY     float64
	keepOrphans bool
	gap         float64
	iterations  int
	noLayout    bool
	output      string
	noCache     bool
	refresh     bool
}

// apply copies explicitly set flags onto opts.
func (f *synthFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	if set("anchor-x") {
		opts.Anchor.X = f.anchorX
	}
	if set("anchor-y") {
		opts.Anchor.Y = f.anchorY
	}
	if set("keep-orphans") {
		opts.KeepOrphans = f.keepOrphans
	}
	if set("gap") {
		opts.Gap = f.gap
	}
	if set("iterations") {
		opts.MaxIterations = f.iterations
	}
	if set("no-layout") {
		opts.SkipLayout = f.noLayout
	}
	opts.Refresh = f.refresh
}

// synthCommand creates the synth command for turning responses into graphs.
func (c *CLI) synthCommand() *cobra.Command {
	var flags synthFlags

	cmd := &cobra.Command{
		Use:   "synth [response...]",
		Short: "Turn model responses into canvas graphs",
		Long: `Turn model responses into canvas graphs.

Each response is a file holding the raw text a language model returned. The
graph is extracted from a fenced code block or the outermost braces, validated,
stripped of blank nodes, dangling edges and orphans, centered on the anchor,
given fresh ids and laid out so that no two nodes overlap.

The result is written as JSON Canvas next to each response (<response>.canvas),
to the file given with -o, or into the directory given with -o when several
responses are synthesized. Use -o - to write a single graph to stdout.

Parsed and sanitized graphs are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			flags.apply(cmd, &opts)
			return c.runSynth(cmd.Context(), args, opts, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.anchorX, "anchor-x", 0, "x coordinate the graph is centered on")
	cmd.Flags().Float64Var(&flags.anchorY, "anchor-y", 0, "y coordinate the graph is centered on")
	cmd.Flags().BoolVar(&flags.keepOrphans, "keep-orphans", false, "keep nodes without edges")
	cmd.Flags().Float64Var(&flags.gap, "gap", pipeline.DefaultGap, "minimum spacing between nodes")
	cmd.Flags().IntVar(&flags.iterations, "iterations", pipeline.DefaultMaxIterations, "maximum overlap resolution passes")
	cmd.Flags().BoolVar(&flags.noLayout, "no-layout", false, "skip resizing and overlap resolution")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, or directory for several responses (default: <response>.canvas)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results (still writes the cache)")

	return cmd
}

// runSynth reads the responses, synthesizes them concurrently and writes one
// canvas per response.
func (c *CLI) runSynth(ctx context.Context, paths []string, opts pipeline.Options, flags synthFlags) error {
	if flags.output == stdoutPath {
		if len(paths) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one response, got %d", len(paths))
		}
		defer statusToStderr()()
	}

	outs, err := synthOutputPaths(paths, flags.output)
	if err != nil {
		return err
	}

	inputs := make([]pipeline.Input, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read response %s: %w", p, err)
		}
		inputs[i] = pipeline.Input{Source: p, Response: string(data)}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Synthesizing %d %s...", len(inputs), plural(len(inputs), "response")))
	if len(inputs) > 1 {
		spinner.Start()
	}
	results, err := runner.SynthesizeAll(ctx, inputs, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	var failed []error
	for i, res := range results {
		if res.Err != nil {
			if len(results) > 1 {
				printError("%s: %s", res.Source, errors.UserMessage(res.Err))
			}
			failed = append(failed, res.Err)
			continue
		}
		out := outs[i]
		if err := writeSynthOutput(res.Graph, out); err != nil {
			return err
		}
		reportSynthesis(res, out)
	}

	if len(results) > 1 {
		prog.done(fmt.Sprintf("Synthesized %d of %d responses", len(results)-len(failed), len(results)))
	}
	switch {
	case len(failed) == 1 && len(results) == 1:
		return failed[0]
	case len(failed) > 0:
		return fmt.Errorf("%d of %d responses could not be synthesized", len(failed), len(results))
	}
	return nil
}

// synthOutputPaths picks where each graph goes, in input order. Without -o a
// graph lands next to its response; with several inputs -o names a directory.
// Colliding names get a numeric suffix ("reply-2.canvas"), and a path that
// would overwrite one of the responses is rejected.
func synthOutputPaths(sources []string, output string) ([]string, error) {
	if output == stdoutPath {
		return []string{stdoutPath}, nil
	}
	inputs := make(map[string]bool, len(sources))
	for _, src := range sources {
		inputs[filepath.Clean(src)] = true
	}
	if len(sources) > 1 && output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", output, err)
		}
	}

	used := make(map[string]bool, len(sources))
	outs := make([]string, len(sources))
	for i, src := range sources {
		stem := strings.TrimSuffix(src, filepath.Ext(src))
		var out string
		switch {
		case output == "":
			out = stem + canvasExt
		case len(sources) == 1:
			out = output
		default:
			out = filepath.Join(output, filepath.Base(stem)+canvasExt)
		}
		out = filepath.Clean(out)
		if inputs[out] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "output %s would overwrite a response; choose another path with -o", out)
		}
		out = uniquePath(out, func(p string) bool { return used[p] || inputs[p] })
		used[out] = true
		outs[i] = out
	}
	return outs, nil
}

// uniquePath returns path, or path with "-2", "-3", ... before its extension,
// whichever is the first that taken reports as free.
func uniquePath(path string, taken func(string) bool) string {
	if !taken(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		if p := fmt.Sprintf("%s-%d%s", stem, n, ext); !taken(p) {
			return p
		}
	}
}

func writeSynthOutput(g canvas.Graph, path string) error {
	if path == stdoutPath {
		return canvas.WriteGraph(g, resultOut)
	}
	if err := canvas.WriteGraphFile(g, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// reportSynthesis prints what happened to one response.
func reportSynthesis(res *pipeline.SynthesisResult, out string) {
	printSuccess("Synthesized %s", res.Source)
	if out != stdoutPath {
		printFile(out)
	}
	printStats(len(res.Graph.Nodes), len(res.Graph.Edges), res.CacheHit)

	s := res.Sanitize
	if s.Removed() > 0 {
		printDetail("dropped %d empty %s, %d dangling %s, %d orphan %s",
			s.EmptyNodes, plural(s.EmptyNodes, "node"),
			s.DanglingEdges, plural(s.DanglingEdges, "edge"),
			s.OrphanNodes, plural(s.OrphanNodes, "node"))
	}
	if n := len(res.Warnings) - res.Warnings.Count(synth.WarnDanglingEdge); n > 0 {
		printDetail("%d other model output %s (-v for details)", n, plural(n, "issue"))
	}
	if res.Layout.Resized > 0 || res.Layout.GroupsGrown > 0 {
		printDetail("resized %d %s, grew %d %s",
			res.Layout.Resized, plural(res.Layout.Resized, "node"),
			res.Layout.GroupsGrown, plural(res.Layout.GroupsGrown, "group"))
	}
	if res.Layout.ResidualOverlaps > 0 {
		printWarning("%d overlapping %s left after %d passes",
			res.Layout.ResidualOverlaps, plural(res.Layout.ResidualOverlaps, "pair"), res.Layout.Iterations)
	}
}

// plural returns word with an "s" unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
