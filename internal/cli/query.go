package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/query"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// traceCommand creates the trace command.
func (c *CLI) traceCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trace <label>...",
		Short: "Print the path from the root to each label",
		Long: `Print the path from the root to each label.

Every label is traced even if an earlier one is missing; the command fails
at the end if any label was not found.`,
		Example: `  foodtree trace "Tortilla Chips"
  foodtree trace Cola "Greek Yogurt" --json`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeLabels,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			type result struct {
				Node  string   `json:"node"`
				Path  []string `json:"path,omitempty"`
				Error string   `json:"error,omitempty"`
			}
			var (
				results []result
				missing []string
			)
			for _, label := range args {
				path, err := e.Trace(cmd.Context(), label)
				if err != nil {
					if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
						return err
					}
					missing = append(missing, label)
					results = append(results, result{Node: label, Error: apperrors.UserMessage(err)})
					continue
				}
				results = append(results, result{Node: label, Path: path})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Error != "" {
						printWarning("%s", r.Error)
						continue
					}
					fmt.Fprintln(out, strings.Join(r.Path, " "+iconArrow+" "))
				}
			}

			if len(missing) > 0 {
				return apperrors.New(apperrors.ErrCodeNodeNotFound, "%d of %d labels not found: %s",
					len(missing), len(args), strings.Join(missing, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// depthCommand creates the depth command.
func (c *CLI) depthCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "depth [label]",
		Short: "Print the maximum depth below a label, or below every category",
		Example: `  foodtree depth
  foodtree depth Snacks`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeOneLabel,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				d, err := e.MaxDepthFrom(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, query.CategoryDepth{Category: args[0], MaxDepth: d})
				}
				fmt.Fprintln(out, d)
				return nil
			}

			depths := e.CategoryDepths(cmd.Context())
			if asJSON {
				return writeJSON(out, depths)
			}
			for _, cd := range depths {
				fmt.Fprintf(out, "%s\t%d\n", cd.Category, cd.MaxDepth)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print how many nodes sit at each depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			census, err := e.LevelCounts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				m := make(map[string]int, len(census))
				for d, n := range census {
					m[strconv.Itoa(d)] = n
				}
				return writeJSON(out, m)
			}
			for d, n := range census {
				fmt.Fprintf(out, "%d\t%d\n", d, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON keyed by depth")
	return cmd
}

// rankCommand creates the rank command.
func (c *CLI) rankCommand() *cobra.Command {
	var (
		k      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank top-level categories by number of descendants",
		Long: `Rank top-level categories by number of descendants, largest first.

Categories with equal counts keep the order in which they were declared.`,
		Example: `  foodtree rank
  foodtree rank -k 0   # all categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				k = c.Config.Analysis.TopK
			}
			if k < 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "--top must not be negative")
			}
			e, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			top := e.TopCategories(cmd.Context(), k)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, top)
			}
			for i, s := range top {
				fmt.Fprintf(out, "%d\t%s\t%d\n", i+1, s.Category, s.Descendants)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "top", "k", query.DefaultTopK, "number of categories (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
