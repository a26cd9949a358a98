package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for foodtree.

Completions include category labels for trace, depth, --highlight and
--from, read from the tree selected by --spec or --graph.

Bash:
  $ source <(foodtree completion bash)

Zsh:
  $ foodtree completion zsh > "${fpath[1]}/_foodtree"

Fish:
  $ foodtree completion fish > ~/.config/fish/completions/foodtree.fish

PowerShell:
  PS> foodtree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeLabels completes tree labels by case-insensitive prefix. Labels
// already given as arguments are skipped.
func (c *CLI) completeLabels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	t, _, err := c.readTree(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool, len(args))
	for _, a := range args {
		seen[a] = true
	}
	prefix := strings.ToLower(toComplete)

	var out []string
	for _, label := range t.Nodes() {
		if seen[label] || !strings.HasPrefix(strings.ToLower(label), prefix) {
			continue
		}
		out = append(out, label)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeOneLabel is completeLabels for commands taking a single label.
func (c *CLI) completeOneLabel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.completeLabels(cmd, args, toComplete)
}
