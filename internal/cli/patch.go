package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mend/pkg/errors"
	"github.com/matzehuels/mend/pkg/patch"
	"github.com/matzehuels/mend/pkg/pipeline"
)

// patchFlags holds the command-line flags for the patch command.
type patchFlags struct {
	threshold float64
	output    string
	write     bool
	diff      bool
	review    bool
	strict    bool
	noCache   bool
	refresh   bool
}

// patchCommand creates the patch command for applying model edits to a file.
func (c *CLI) patchCommand() *cobra.Command {
	var flags patchFlags

	cmd := &cobra.Command{
		Use:   "patch [document] [response]",
		Short: "Apply the changes a model response asks for to a document",
		Long: `Apply the changes a model response asks for to a document.

The response may list changes as marker blocks

  <<<<<<< ORIGINAL
  text quoted from the document
  =======
  replacement text
  >>>>>>> NEW

or as a JSON or YAML list of {original, new} objects. Each quoted original is
located exactly, then ignoring whitespace differences, then by fuzzy matching
with the given similarity threshold. Changes that match nothing are reported
and skipped; the rest are applied.

The patched document goes to stdout unless -o or --write is given. With
--review the matched changes are listed first and can be toggled before
anything is applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = flags.threshold
			}
			opts.Refresh = flags.refresh
			if flags.write && flags.output != "" {
				return errors.New(errors.ErrCodeInvalidInput, "--write and --output are mutually exclusive")
			}
			return c.runPatch(cmd.Context(), args[0], args[1], opts, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.threshold, "threshold", pipeline.DefaultThreshold, "minimum similarity for a fuzzy match, in (0, 1]")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite the document in place")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show the resulting diff")
	cmd.Flags().BoolVar(&flags.review, "review", false, "choose interactively which changes to apply")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with an error if any change did not match")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results (still writes the cache)")

	return cmd
}

// runPatch applies the response to the document and writes the result.
func (c *CLI) runPatch(ctx context.Context, docPath, respPath string, opts pipeline.Options, flags patchFlags) error {
	doc, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read document %s: %w", docPath, err)
	}
	resp, err := os.ReadFile(respPath)
	if err != nil {
		return fmt.Errorf("read response %s: %w", respPath, err)
	}

	if !flags.write && flags.output == "" {
		defer statusToStderr()()
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	var res *pipeline.PatchResult
	if flags.review {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return err
		}
		changes, ok, err := reviewChanges(string(doc), patch.ParseChanges(string(resp)), opts.Threshold)
		if err != nil {
			return err
		}
		if !ok {
			return passThrough(string(doc), flags)
		}
		res, err = runner.ApplyChanges(ctx, string(doc), changes, opts)
		if err != nil {
			return err
		}
	} else {
		res, err = runner.Patch(ctx, string(doc), string(resp), opts)
		if err != nil {
			return err
		}
	}

	if len(res.Changes) == 0 {
		printInfo("No changes found in %s", respPath)
		return passThrough(string(doc), flags)
	}

	if err := writePatchOutput(res.Text, docPath, flags); err != nil {
		return err
	}
	reportPatch(res, docPath, string(doc), flags)

	if flags.strict && !res.Success {
		return errors.New(errors.ErrCodeInvalidInput, "%d of %d changes did not match", len(res.Failed), len(res.Changes))
	}
	return nil
}

// reviewChanges lets the user pick changes. ok is false when the user quit
// without confirming or there was nothing to review.
func reviewChanges(doc string, changes []patch.Change, threshold float64) ([]patch.Change, bool, error) {
	if len(changes) == 0 {
		printInfo("No changes to review")
		return nil, false, nil
	}

	m := NewReviewModel(doc, changes, threshold)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	fm, ok := finalModel.(ReviewModel)
	if !ok || !fm.Confirmed {
		printDetail("Review cancelled, nothing applied")
		return nil, false, nil
	}
	selected := fm.Selected()
	if len(selected) == 0 {
		printDetail("No changes selected")
		return nil, false, nil
	}
	return selected, true, nil
}

// passThrough writes the unchanged document when the result goes to stdout,
// so a redirected run never leaves an empty file behind. Files named by -o or
// -w are left untouched.
func passThrough(doc string, flags patchFlags) error {
	if flags.write || flags.output != "" {
		return nil
	}
	return writePatchOutput(doc, "", flags)
}

func writePatchOutput(text, docPath string, flags patchFlags) error {
	switch {
	case flags.write:
		info, err := os.Stat(docPath)
		if err != nil {
			return fmt.Errorf("stat document %s: %w", docPath, err)
		}
		if err := os.WriteFile(docPath, []byte(text), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write document %s: %w", docPath, err)
		}
	case flags.output != "":
		if err := os.WriteFile(flags.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", flags.output, err)
		}
	default:
		if _, err := io.WriteString(resultOut, text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// reportPatch prints the outcome, the unmatched changes and optionally the diff.
func reportPatch(res *pipeline.PatchResult, docPath, before string, flags patchFlags) {
	switch {
	case res.Success:
		printSuccess("Applied %d %s to %s", res.Applied, plural(res.Applied, "change"), docPath)
	case res.Applied == 0:
		printWarning("No changes matched %s", docPath)
	default:
		printWarning("Applied %d of %d changes to %s", res.Applied, len(res.Changes), docPath)
	}
	switch {
	case flags.write:
		printFile(docPath)
	case flags.output != "":
		printFile(flags.output)
	}
	printPatchStats(res.Applied, len(res.Failed), res.CacheHit)

	for _, f := range res.Failed {
		printDetail("unmatched: %s", summarize(f.Original, 60))
	}

	if flags.diff {
		p := patch.NewPreview(before, res.Text)
		if p.Changed() {
			printNewline()
			printDiff(p.Pretty)
			printNewline()
			printDetail("+%d -%d characters", p.Inserted, p.Deleted)
		}
	}

	if len(res.Failed) > 0 && !flags.review {
		printNewline()
		printNextStep("Inspect a failed change", fmt.Sprintf("%s match %s '<text>'", appName, docPath))
	}
}
