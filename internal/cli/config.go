// Config loading for the mirror CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/mirror/internal/paths"
	"github.com/mesh-intelligence/mirror/pkg/catalog"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyCacheSize = "cache_size"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	CacheSize int    `yaml:"cache_size"`
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	configDir string
	config    types.Config
}

// loadSettings resolves directories and reads config.yaml with Viper.
// A missing config.yaml is not an error.
func loadSettings(f *rootFlags) (settings, error) {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return settings{}, sysError("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyCacheSize, types.DefaultCacheSize)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, userError("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, sysError("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   dataDir,
		CacheSize: v.GetInt(cfgKeyCacheSize),
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, userError("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return settings{configDir: configDir, config: cfg}, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		Backend:   types.BackendSQLite,
		DataDir:   dataDir,
		CacheSize: types.DefaultCacheSize,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}

// attachCatalog opens the snapshot catalog described by s. The caller must
// Detach it.
func attachCatalog(s settings) (types.Catalog, error) {
	backend := catalog.NewBackend()
	if err := backend.Attach(s.config); err != nil {
		return nil, sysError("attach catalog: %w", err)
	}
	return backend, nil
}
