package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	homeDirName    = ".rfind"
	configFileName = "config.yaml"
)

// GetRfindHome returns the rfind home directory
// Priority order:
//  1. RFIND_HOME environment variable (if set)
//  2. The nearest .rfind directory in the working directory or its parents
//  3. .rfind in the user's home directory (fallback)
//
// The directory is not created; callers writing into it do that themselves.
func GetRfindHome() (string, error) {
	if home := os.Getenv("RFIND_HOME"); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if dir, ok := findHomeUpwards(cwd); ok {
		return dir, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	return filepath.Join(userHome, homeDirName), nil
}

// findHomeUpwards walks from start to the filesystem root looking for a
// .rfind directory
func findHomeUpwards(start string) (string, bool) {
	current := start
	for {
		candidate := filepath.Join(current, homeDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// ResolveConfigPath returns the configuration file to load
// Priority order: explicit path, RFIND_CONFIG, then config.yaml in the rfind home
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("RFIND_CONFIG"); env != "" {
		return env, nil
	}

	home, err := GetRfindHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ResolveHistoryDBPath returns the absolute location of the history database
func (c *Config) ResolveHistoryDBPath() (string, error) {
	if c.History.DBPath == ":memory:" || filepath.IsAbs(c.History.DBPath) {
		return c.History.DBPath, nil
	}

	home, err := GetRfindHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, c.History.DBPath), nil
}
