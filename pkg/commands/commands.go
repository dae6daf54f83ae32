package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	logLevel string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "polines",
		Short:        base.Wrap80("Edit purchase order line items from the terminal and report every change to the host."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addRender(topLevel)
	addExport(topLevel)
	addWatch(topLevel)
	addOutbox(topLevel)
	addConfig(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
