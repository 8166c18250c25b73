package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/attune/pkg/config"
)

const modulePath = "github.com/mesh-intelligence/attune"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the attune version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "attune v%s\nmodule: %s\n", config.Version, modulePath)
			return nil
		},
	}
}
