package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gridsketch.

To load completions:

Bash:
  $ source <(gridsketch completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ gridsketch completion bash > /etc/bash_completion.d/gridsketch
  # macOS:
  $ gridsketch completion bash > $(brew --prefix)/etc/bash_completion.d/gridsketch

Zsh:
  $ gridsketch completion zsh > "${fpath[1]}/_gridsketch"

Fish:
  $ gridsketch completion fish > ~/.config/fish/completions/gridsketch.fish

PowerShell:
  PS> gridsketch completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
