package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/commands/options"
	"tableflip.dev/polines/pkg/inbox"
	"tableflip.dev/polines/pkg/printers"
)

func addWatch(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	dir := ""
	once := false

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Summarise each document dropped into the inbox.",
		Example: `
polines watch --inbox ~/po-inbox
polines watch --once
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := oo.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			rt, err := setup(nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			if dir == "" {
				dir = rt.cfg.Inbox
			}
			if dir == "" {
				return errors.New("no inbox configured; pass --inbox or set inbox in .polines.yaml")
			}
			w := inbox.New(dir, rt.cfg.Variant, rt.log)

			if once {
				evs, err := w.Scan()
				if err != nil {
					return err
				}
				for _, ev := range evs {
					if err := summarise(rt, p, ev); err != nil {
						return err
					}
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchInbox(ctx, rt, p, w)
		},
	}
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringVar(&dir, "inbox", "", "Inbox directory. Defaults to the configured inbox.")
	cmd.Flags().BoolVar(&once, "once", false, "Summarise the documents already there and exit.")

	topLevel.AddCommand(cmd)
}

func watchInbox(ctx context.Context, rt *runtime, p *printers.Printer, w *inbox.Watcher) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	rt.log.WithField("dir", w.Dir).Info("watching inbox")
	for ev := range events {
		if err := summarise(rt, p, ev); err != nil {
			return err
		}
	}
	return nil
}

// summarise loads ev and prints its summary. Bad documents are reported and
// skipped.
func summarise(rt *runtime, p *printers.Printer, ev inbox.Event) error {
	log := rt.log.WithField("source", ev.Path)
	if ev.Err != nil {
		log.WithError(ev.Err).Warn("inbox read failed")
		return nil
	}
	editor := rt.editor(nil)
	if err := editor.Load(ev.Payload, ev.Variant); err != nil {
		log.WithError(err).Warn("inbox document rejected")
		_, werr := fmt.Fprintf(p.Out, "%s: %s\n", ev.Path, editor.View().Message)
		return werr
	}
	if _, err := fmt.Fprintf(p.Out, "%s: ", ev.Path); err != nil {
		return err
	}
	return p.Summary(editor.View())
}
