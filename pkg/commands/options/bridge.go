package options

import (
	"github.com/spf13/cobra"
)

// BridgeOptions override the configured host bridge.
type BridgeOptions struct {
	Bridge string
	Script string
	Outbox string
}

func AddBridgeArgs(cmd *cobra.Command, o *BridgeOptions) {
	cmd.Flags().StringVar(&o.Bridge, "bridge", "",
		"Where changes go: log, stdout or outbox.")
	cmd.Flags().StringVar(&o.Script, "script", "",
		"Host script receiving changes.")
	cmd.Flags().StringVar(&o.Outbox, "outbox", "",
		"Outbox directory for the outbox bridge.")
}
