package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/hierarchy"
	treeio "github.com/matzehuels/foodtree/pkg/io"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tree as node-link JSON or a flat spec file",
		Long: `Write the tree to a file. The format follows the extension:

  .json           node-link JSON ({root, nodes, edges}), readable with --graph
  .toml, .yaml    flat spec (root plus edge list), readable with --spec`,
		Example: `  foodtree export -o foods.json
  foodtree export --spec nested.yaml -o flat.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "--output is required")
			}
			format, err := apperrors.FormatFromPath(output, hierarchy.FormatJSON, hierarchy.FormatTOML, hierarchy.FormatYAML)
			if err != nil {
				return err
			}

			t, err := c.loadTree(cmd.Context())
			if err != nil {
				return err
			}

			if format == hierarchy.FormatJSON {
				err = treeio.ExportJSON(t, output)
			} else {
				err = hierarchy.Save(hierarchy.FromTree(t), output)
			}
			if err != nil {
				return err
			}

			printSuccess("Exported %d nodes", t.NodeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .toml, .yaml)")
	return cmd
}
