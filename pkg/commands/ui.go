package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/commands/options"
	"tableflip.dev/polines/pkg/config"
	"tableflip.dev/polines/pkg/inbox"
	teaui "tableflip.dev/polines/pkg/tui/app"
	"tableflip.dev/polines/pkg/tui/events"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	bo := &options.BridgeOptions{}
	dir := ""

	cmd := &cobra.Command{
		Use:   "ui [document.json]",
		Short: "open the line item editor",
		Example: `
polines ui po.json
polines ui --inbox ~/po-inbox --bridge outbox
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(bo, nil)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.cfg.Bridge == config.BridgeStdout {
				return errors.New("the stdout bridge would draw over the ui; use log or outbox")
			}
			bridge, err := rt.bridge(nil)
			if err != nil {
				return err
			}
			editor := rt.editor(bridge)

			if len(args) > 0 {
				in, source, err := options.Open(cmd, args)
				if err != nil {
					return err
				}
				err = editor.Load(in, rt.variant(do.Variant))
				_ = in.Close()
				if err != nil {
					rt.log.WithError(err).WithField("source", source).Warn("initial load failed")
				}
			}

			if dir == "" {
				dir = rt.cfg.Inbox
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			opts := []teaui.Option{teaui.WithLogger(rt.log)}
			if dir != "" {
				loads, err := feed(ctx, inbox.New(dir, rt.variant(do.Variant), rt.log))
				if err != nil {
					return err
				}
				opts = append(opts, teaui.WithLoads(loads))
			}
			return teaui.Run(editor, opts...)
		},
	}
	options.AddDocumentArgs(cmd, do)
	options.AddBridgeArgs(cmd, bo)
	cmd.Flags().StringVar(&dir, "inbox", "", "Load documents dropped into this directory.")

	topLevel.AddCommand(cmd)
}

// feed turns inbox events into UI messages, starting with the newest
// document already waiting.
func feed(ctx context.Context, w *inbox.Watcher) (<-chan tea.Msg, error) {
	existing, err := w.Scan()
	if err != nil {
		return nil, err
	}
	stream, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan tea.Msg)
	go func() {
		defer close(out)
		if n := len(existing); n > 0 {
			if !forward(ctx, out, existing[n-1]) {
				return
			}
		}
		for ev := range stream {
			if !forward(ctx, out, ev) {
				return
			}
		}
	}()
	return out, nil
}

func forward(ctx context.Context, out chan<- tea.Msg, ev inbox.Event) bool {
	select {
	case out <- loadMsg(ev):
		return true
	case <-ctx.Done():
		return false
	}
}

func loadMsg(ev inbox.Event) tea.Msg {
	if ev.Err != nil {
		return events.LoadErrorMsg{Source: ev.Path, Err: ev.Err}
	}
	return events.LoadMsg{Source: ev.Path, Payload: ev.Payload, Variant: ev.Variant}
}
