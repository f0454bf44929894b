package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPrivateKey is the private key path decrypt falls back to when
// neither a flag nor the config file names one.
const DefaultPrivateKey = "~/.ssh/id_rsa"

// Settings is the user's jass configuration. The zero value means "use
// built-in defaults"; flags always win over anything set here.
type Settings struct {
	Keys   KeySettings    `toml:"keys"`
	GitHub GitHubSettings `toml:"github"`
}

// KeySettings configures default key material.
type KeySettings struct {
	// Private is the private key used by decrypt when no flag names one.
	Private string `toml:"private"`

	// Public lists key files or globs added to every recipient set.
	Public []string `toml:"public"`
}

// GitHubSettings configures the key directory endpoint.
type GitHubSettings struct {
	// API overrides the GitHub API base URL, for GitHub Enterprise.
	API string `toml:"api"`
}

// DefaultPath returns the per-user config file location,
// <UserConfigDir>/jass/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "jass", "config.toml"), nil
}

// Load reads the user's configuration file. A missing file is not an
// error; it yields the zero Settings.
func Load() (Settings, error) {
	path, err := DefaultPath()
	if err != nil {
		return Settings{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration file at path.
func LoadFrom(path string) (Settings, error) {
	var settings Settings

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return settings, nil
}
