package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

// executable is a seam for tests.
var executable = os.Executable

// DefaultPath returns ~/.config/pplus-installer/config.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeFailedFmt, err)
	}
	return filepath.Join(home, ".config", "pplus-installer", "config.toml"), nil
}

// ExpandPath expands a leading ~ in path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFailedFmt, path, err)
	}
	return expanded, nil
}

// ArchivePath resolves the payload archive. Relative paths are taken relative
// to the directory holding the running executable, where the release bundles it.
func (c *Config) ArchivePath() (string, error) {
	path, err := ExpandPath(c.Payload.Archive)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	exe, err := executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), path), nil
}
