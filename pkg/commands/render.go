package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/app"
	"tableflip.dev/polines/pkg/commands/options"
)

func addRender(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	do := &options.DocumentOptions{}

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Print a purchase order's line items.",
		Example: `
polines render po.json
polines render --variant standard -o json < po.json
polines render po.json --search tee --department Embroidery
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(cmd.OutOrStdout(), runRender(cmd, args, oo, do))
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddDocumentArgs(cmd, do)

	topLevel.AddCommand(cmd)
}

func runRender(cmd *cobra.Command, args []string, oo *options.OutputOptions, do *options.DocumentOptions) error {
	p, err := oo.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	rt, err := setup(nil, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.Close()

	editor, err := loadEditor(cmd, args, rt, do)
	if err != nil {
		return err
	}
	return p.View(editor.View())
}

// loadEditor reads the document named by args into a new editor and applies
// the view filters.
func loadEditor(cmd *cobra.Command, args []string, rt *runtime, do *options.DocumentOptions) (*app.Editor, error) {
	in, source, err := options.Open(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	editor := rt.editor(nil)
	if err := editor.Load(in, rt.variant(do.Variant)); err != nil {
		rt.log.WithField("source", source).Debug("render load failed")
		return nil, err
	}
	if do.Search != "" {
		if err := editor.SetSearch(do.Search); err != nil {
			return nil, err
		}
	}
	if do.Department != "" {
		if err := editor.SetDepartment(do.Department); err != nil {
			return nil, err
		}
	}
	return editor, nil
}
