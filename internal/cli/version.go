package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mirror/pkg/mirror"
)

const modulePath = "github.com/mesh-intelligence/mirror"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mirror version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mirror v%s\nmodule: %s\n", mirror.Version, modulePath)
			return nil
		},
	}
}
