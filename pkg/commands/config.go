package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/commands/options"
)

func addConfig(topLevel *cobra.Command) {
	oo := &options.OutputOptions{Format: "yaml"}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration.",
		Example: `
POLINES_BRIDGE=outbox polines config -o json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			p, err := oo.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return p.Config(rt.cfg)
		},
	}
	cmd.Flags().StringVarP(&oo.Format, "output", "o", "yaml", "Output format. One of json or yaml.")

	topLevel.AddCommand(cmd)
}
