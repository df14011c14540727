// ABOUTME: XDG Base Directory specification helpers
// ABOUTME: Resolves quietwins data and config locations with fallbacks
package config

import (
	"os"
	"path/filepath"
)

// AppName names the quietwins directories under the XDG homes.
const AppName = "quietwins"

// GetDataHome returns XDG_DATA_HOME or fallback to ~/.local/share
func GetDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".config")
}

// DefaultDatabasePath is where the wins database lives by default.
func DefaultDatabasePath() string {
	return filepath.Join(GetDataHome(), AppName, AppName+".db")
}

// DefaultConfigPath is the default location of config.toml.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigHome(), AppName, "config.toml")
}

// DefaultRulesPath is the default location of the user rule dictionary.
func DefaultRulesPath() string {
	return filepath.Join(GetConfigHome(), AppName, "rules.toml")
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}
