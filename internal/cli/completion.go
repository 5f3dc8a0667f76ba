package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/reqconv/pkg/pipfile"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for reqconv. Besides commands and flags, the
scripts complete Pipfile section names for --section and requirements files
for --file.

Bash:
  $ source <(reqconv completion bash)

Zsh:
  $ reqconv completion zsh > "${fpath[1]}/_reqconv"

Fish:
  $ reqconv completion fish > ~/.config/fish/completions/reqconv.fish

PowerShell:
  PS> reqconv completion powershell | Out-String | Invoke-Expression
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

// registerCompletions attaches value completions to the flags of the
// conversion commands. Flags a command does not define are skipped.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if cmd.Flags().Lookup("section") != nil {
			_ = cmd.RegisterFlagCompletionFunc("section", completeSection)
		}
		if cmd.Flags().Lookup("file") != nil {
			_ = cmd.MarkFlagFilename("file", "txt")
		}
		if cmd.Flags().Lookup("pipfile") != nil {
			_ = cmd.RegisterFlagCompletionFunc("pipfile", completePipfile)
		}
	}
}

func completeSection(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		pipfile.SectionPackages + "\tdefault packages",
		pipfile.SectionDevPackages + "\tdevelopment packages",
	}, cobra.ShellCompDirectiveNoFileComp
}

func completePipfile(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{pipfile.Filename}, cobra.ShellCompDirectiveDefault
}
