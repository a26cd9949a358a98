package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/pkg/report"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		traces []string
		topK   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run every analysis and print a report",
		Long: `Run every analysis and print a report: the path to each --trace label,
the maximum depth below every top-level category, the number of categories
at each level, and the largest top-level categories.

A label that is not in the tree is reported and the remaining analyses
still run.`,
		Example: `  foodtree analyze --trace "Tortilla Chips" --trace "Greek Yogurt"
  foodtree analyze --spec my-foods.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("trace") {
				traces = c.Config.Analysis.Traces
			}
			if !cmd.Flags().Changed("top") {
				topK = c.Config.Analysis.TopK
			}

			e, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			r, err := report.Generate(cmd.Context(), e, report.Options{Traces: traces, TopK: topK})
			if err != nil {
				return err
			}
			c.Logger.Debug("Generated report", "id", r.ID)

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			return report.WriteText(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringArrayVarP(&traces, "trace", "t", nil, "label to trace (repeatable)")
	cmd.Flags().IntVarP(&topK, "top", "k", 0, "number of ranked categories (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
