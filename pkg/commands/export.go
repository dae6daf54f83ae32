package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/commands/options"
	"tableflip.dev/polines/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	out := ""

	cmd := &cobra.Command{
		Use:   "export [document.json]",
		Short: "Write the visible line items to an Excel workbook.",
		Example: `
polines export po.json --out po.xlsx
polines export --department Shipping --out - < po.json > shipping.xlsx
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
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
			if out == "-" {
				return export.Write(cmd.OutOrStdout(), editor.View())
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.Write(f, editor.View()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			rt.log.WithField("file", out).Info("workbook written")
			return nil
		},
	}
	options.AddDocumentArgs(cmd, do)
	cmd.Flags().StringVar(&out, "out", "", "Workbook path, or - for stdout.")

	topLevel.AddCommand(cmd)
}
