package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigFile and LegacyProjectConfigFile are looked up at the
// repository root.
const (
	ProjectConfigFile       = ".commitwit.yml"
	LegacyProjectConfigFile = ".commitwit.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/commitwit/config.yml
// - macOS: ~/Library/Application Support/commitwit/config.yml
// - Windows: %APPDATA%\commitwit\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "commitwit"), nil
}

// ProjectConfigPath returns the project config path under root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectConfigFile)
}

// LegacyProjectConfigPath returns the legacy JSON project config path under root.
func LegacyProjectConfigPath(root string) string {
	return filepath.Join(root, LegacyProjectConfigFile)
}
