// Package paths resolves the configuration and catalog data directories used
// by the mirror command.
// Implements: configuration directory resolution (flag, environment, XDG
// defaults) and catalog data directory resolution.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directories under the platform roots.
const appName = "mirror"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".mirror"
	DefaultDataDirName   = ".mirror-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MIRROR_CONFIG_DIR"
	EnvDataDir   = "MIRROR_DATA_DIR"
)

// platformDir holds platform-detection functions that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns the per-user directory for mirror. On Linux it honors
// xdgVar and otherwise falls back to fallback under the home directory.
// Other platforms share os.UserConfigDir for config and data.
func userDir(xdgVar string, fallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/mirror (fallback ~/.config/mirror)
// macOS:   ~/Library/Application Support/mirror
// Windows: %APPDATA%/mirror
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/mirror (fallback ~/.local/share/mirror)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory: flag, then
// MIRROR_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the catalog data directory: flag, then the
// data_dir value from config.yaml, then MIRROR_DATA_DIR, then .mirror-db
// under the working directory.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
