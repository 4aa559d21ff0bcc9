package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand wires cobra's shell completion generators.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the renderbox commands and flags.

To load it in the current shell:

Bash:
  $ source <(renderbox completion bash)

  # Or install it for every session:
  $ renderbox completion bash > /etc/bash_completion.d/renderbox

Zsh:
  # Requires compinit; enable it once with:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ renderbox completion zsh > "${fpath[1]}/_renderbox"

Fish:
  $ renderbox completion fish | source

  # Or install it:
  $ renderbox completion fish > ~/.config/fish/completions/renderbox.fish

PowerShell:
  PS> renderbox completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
