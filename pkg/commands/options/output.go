package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/polines/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", string(printers.FormatTable),
		fmt.Sprintf("Output format. One of %s.", strings.Join(printers.Formats(), ", ")))
}

// Printer returns a printer writing to out in the chosen format.
func (o *OutputOptions) Printer(out io.Writer) (*printers.Printer, error) {
	f, err := printers.ParseFormat(o.Format)
	if err != nil {
		return nil, err
	}
	return printers.New(out, f), nil
}

// HandleError reports err as a JSON object on out when the output is
// structured, so scripted callers always get parseable output.
func (o *OutputOptions) HandleError(out io.Writer, err error) error {
	if err == nil || o.Format != string(printers.FormatJSON) {
		return err
	}
	b, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}
