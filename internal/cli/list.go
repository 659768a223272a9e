package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ide-config/internal/patch"
)

// NewListCmd prints each patch name with the file it edits.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available patches and the files they edit",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, p := range patch.Default() {
				fmt.Fprintf(cc.OutOrStdout(), "%-16s %s\n", p.Name, p.File)
			}
			return nil
		},
	}
}
