package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mend/pkg/patch"
	"github.com/matzehuels/mend/pkg/pipeline"
	"github.com/matzehuels/mend/pkg/similarity"
)

// matchCommand creates the match command, a debugging aid for the matcher.
func (c *CLI) matchCommand() *cobra.Command {
	var (
		threshold  float64
		needleFile bool
	)

	cmd := &cobra.Command{
		Use:   "match [document] [needle]",
		Short: "Show where a piece of text matches a document",
		Long: `Show where a piece of text matches a document.

Runs the same matcher the patch command uses and prints the matched byte range,
the strategy that found it and its similarity score. With --file the needle is
read from a file instead of the command line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") && c.Config.Patch.Threshold > 0 {
				threshold = c.Config.Patch.Threshold
			}
			needle := args[1]
			if needleFile {
				data, err := os.ReadFile(args[1])
				if err != nil {
					return fmt.Errorf("read needle %s: %w", args[1], err)
				}
				needle = string(data)
			}
			return runMatch(cmd.Context(), args[0], needle, threshold)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", pipeline.DefaultThreshold, "minimum similarity for a fuzzy match, in (0, 1]")
	cmd.Flags().BoolVarP(&needleFile, "file", "f", false, "read the needle from a file")

	return cmd
}

func runMatch(ctx context.Context, docPath, needle string, threshold float64) error {
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{Threshold: threshold}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read document %s: %w", docPath, err)
	}
	doc := string(data)

	logger.Debug("matching", "document", docPath, "bytes", len(doc), "needle_bytes", len(needle), "threshold", opts.Threshold)
	span := patch.Match(doc, needle, opts.Threshold)
	if span == nil {
		printWarning("No match at threshold %.2f", opts.Threshold)
		return nil
	}

	matched := doc[span.Start:span.End]
	printSuccess("Matched %s", docPath)
	printKeyValue("range", fmt.Sprintf("[%d, %d)", span.Start, span.End))
	printKeyValue("strategy", strategyStyles[span.Strategy].Render(string(span.Strategy)))
	printKeyValue("score", StyleNumber.Render(strconv.FormatFloat(span.Score, 'f', 3, 64)))
	printKeyValue("distance", StyleNumber.Render(strconv.Itoa(similarity.Distance(matched, needle))))
	printKeyValue("text", summarize(matched, 60))
	return nil
}
