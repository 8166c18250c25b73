// Package cli implements the attune command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// exitFailure is the exit code for any failed command.
const exitFailure = 1

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	context   string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "attune" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "attune",
		Short: "Store and query JSON configurations",
		Long: "Attune converts object graphs to and from JSON-compatible configuration\n" +
			"values and manages a store of named configurations.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .attune-db)")
	root.PersistentFlags().StringVar(&flags.context, "context", "", "conversion context name (default: default)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newPatchCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newDeleteCmd())

	return root
}

// Execute runs the root command and exits with a failure code on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitFailure)
	}
}
