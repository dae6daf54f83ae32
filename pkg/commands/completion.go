package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/lineitem"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(polines completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(polines completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)

	for _, c := range topLevel.Commands() {
		if c.Flags().Lookup("department") != nil {
			_ = c.RegisterFlagCompletionFunc("department", departmentCompletions)
		}
		if c.Flags().Lookup("variant") != nil {
			_ = c.RegisterFlagCompletionFunc("variant", variantCompletions)
		}
	}
}

func departmentCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lineitem.Departments, cobra.ShellCompDirectiveNoFileComp
}

func variantCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, v := range lineitem.AllVariants() {
		out = append(out, v.String())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
