package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/commands/options"
	"tableflip.dev/polines/pkg/dispatch"
)

func addOutbox(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	bo := &options.BridgeOptions{}
	drain := false

	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "List or drain host notifications queued by the outbox bridge.",
		Example: `
polines outbox
polines outbox -o json
polines outbox --drain | host-performer
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(bo, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			box := dispatch.NewOutboxBridge(rt.cfg.Outbox)
			if drain {
				w := dispatch.NewWriterBridge(cmd.OutOrStdout())
				n, err := box.Drain(cmd.Context(), func(c dispatch.Call) error {
					return w.PerformScript(c.Script, c.Parameter)
				})
				rt.log.WithField("count", n).Info("outbox drained")
				return err
			}

			p, err := oo.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			calls, err := box.Pending(cmd.Context())
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			return p.Calls(calls)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddBridgeArgs(cmd, bo)
	cmd.Flags().BoolVar(&drain, "drain", false, "Write each queued call to stdout as a JSON line and remove it.")

	topLevel.AddCommand(cmd)
}
