package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/hierarchy"
	"github.com/matzehuels/foodtree/pkg/ingest"
)

// ingestCommand creates the ingest command.
func (c *CLI) ingestCommand() *cobra.Command {
	var (
		output  string
		country string
		root    string
	)

	cmd := &cobra.Command{
		Use:   "ingest <products.tsv>",
		Short: "Derive a hierarchy spec from an Open Food Facts export",
		Long: `Derive a hierarchy spec from an Open Food Facts products export (TSV).

Products sold in --country contribute their ordered category tags as
parent-child pairs. Pairs that would give a category a second parent or
close a cycle are dropped; the summary reports how many.`,
		Example: `  foodtree ingest en.openfoodfacts.org.products.tsv -o us-foods.toml
  foodtree ingest products.tsv --country en:canada --root "Canadian Food" -o ca.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "--output is required")
			}
			if !cmd.Flags().Changed("country") {
				country = c.Config.Ingest.Country
			}
			if !cmd.Flags().Changed("root") {
				root = c.Config.Ingest.Root
			}

			spinner := newSpinner(cmd.Context(), "Reading "+args[0]+"...")
			spinner.Start()
			prog := newProgress(c.Logger)
			res, err := ingest.File(cmd.Context(), args[0], ingest.Options{Country: country, Root: root})
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done("Ingested export", "rows", res.Stats.Rows, "kept", res.Stats.Kept)

			// Reject the result before writing if it would not build.
			t, err := hierarchy.Build(cmd.Context(), res.Spec)
			if err != nil {
				return fmt.Errorf("derived hierarchy is invalid: %w", err)
			}
			if err := hierarchy.Save(res.Spec, output); err != nil {
				return err
			}

			printSuccess("Derived %d categories from %d products", t.NodeCount()-1, res.Stats.Kept)
			printFile(output)
			printKeyValue("rows", strconv.Itoa(res.Stats.Rows))
			printKeyValue("pairs", strconv.Itoa(res.Stats.Pairs))
			printKeyValue("top level", strconv.Itoa(res.Stats.TopLevel))
			printKeyValue("duplicates", strconv.Itoa(res.Stats.Duplicates))
			if dropped := res.Stats.Conflicts + res.Stats.Cycles; dropped > 0 {
				printWarning("Dropped %d pairs (%d second parents, %d cycles)", dropped, res.Stats.Conflicts, res.Stats.Cycles)
			}
			printNextStep("Analyze it", fmt.Sprintf("%s analyze --spec %s", appName, output))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "spec file to write (.toml, .yaml, .json)")
	flags.StringVar(&country, "country", ingest.DefaultCountry, "country tag products must carry")
	flags.StringVar(&root, "root", ingest.DefaultRoot, "root label")
	return cmd
}
