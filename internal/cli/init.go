package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/attune/internal/paths"
	"github.com/mesh-intelligence/attune/internal/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the configuration store",
		Long:  "Create the configuration and data directories, write a default config.yaml,\nand initialize the store database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	// Opening and closing the store creates the database and schema.
	s, err := store.Open(dataDir)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("finalize store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized attune store.\nconfig: %s\ndata:   %s\n", configDir, dataDir)
	return nil
}
