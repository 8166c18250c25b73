package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/attune/internal/paths"
	"github.com/mesh-intelligence/attune/internal/store"
	"github.com/mesh-intelligence/attune/pkg/config"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys recognized in config.yaml.
	cfgKeyDataDir = "data_dir"
	cfgKeyContext = "context"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Attune CLI configuration

# Conversion context used when --context is not given
context: default

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyContext, config.DefaultContextName)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// openStore resolves directories, loads the config file, and opens the
// configuration store. The caller must close the returned store.
func openStore() (*store.Store, *viper.Viper, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}
	s, err := store.Open(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

// resolveContextName returns the context name from flag, config file, or the
// default context name.
func resolveContextName(v *viper.Viper) string {
	if flags.context != "" {
		return flags.context
	}
	if name := v.GetString(cfgKeyContext); name != "" {
		return name
	}
	return config.DefaultContextName
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
