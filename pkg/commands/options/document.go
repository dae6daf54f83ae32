package options

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// DocumentOptions select the document and how it is viewed.
type DocumentOptions struct {
	Variant    string
	Search     string
	Department string
}

func AddDocumentArgs(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().StringVar(&o.Variant, "variant", "",
		"Line item variant, apparel or standard. Defaults to the configured variant.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show rows matching this text.")
	cmd.Flags().StringVarP(&o.Department, "department", "d", "",
		"Only show rows in this department.")
}

// Open returns the document named by args, or stdin when args is empty or "-".
func Open(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}
	return f, args[0], nil
}
