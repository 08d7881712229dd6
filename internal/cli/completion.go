package cli

import (
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// shellScripts maps each supported shell to its completion generator.
var shellScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion SHELL",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Completion covers subcommands, flags, strategy names and output formats.
For a single session:

  source <(program2mass completion bash)
  program2mass completion fish | source

To keep it, save the script wherever your shell reads completions, e.g.
"${fpath[1]}/_program2mass" for zsh.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shellScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeFrom completes a flag value from the keys of set.
func completeFrom(set map[string]bool) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return slices.Sorted(maps.Keys(set)), cobra.ShellCompDirectiveNoFileComp
	}
}
