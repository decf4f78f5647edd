package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for cssmin.

Bash:
  $ source <(cssmin completion bash)

Zsh:
  $ cssmin completion zsh > "${fpath[1]}/_cssmin"

Fish:
  $ cssmin completion fish > ~/.config/fish/completions/cssmin.fish

PowerShell:
  PS> cssmin completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root := cmd.Root()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

// completeInputs completes the output directory first and stylesheets after
func completeInputs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return []string{"css"}, cobra.ShellCompDirectiveFilterFileExt
}

func init() {
	rootCmd.ValidArgsFunction = completeInputs
	watchCmd.ValidArgsFunction = completeInputs
	rootCmd.AddCommand(completionCmd)
}
