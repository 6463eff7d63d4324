package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the per-project directory holding config, logs and the run
// database
const DirName = ".wcagcheck"

// HomeEnv overrides the home directory
const HomeEnv = "WCAGCHECK_HOME"

// GetHome returns the directory that contains .wcagcheck.
// Priority order:
//  1. WCAGCHECK_HOME environment variable (if set)
//  2. Current working directory
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// GetDataDir returns <home>/.wcagcheck, creating it if needed
func GetDataDir() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s directory: %w", DirName, err)
	}
	return dir, nil
}

// Load reads the config for the current home, or path when non-empty, and
// resolves relative paths against the home directory
func Load(path string) (*Config, error) {
	home, err := GetHome()
	if err != nil {
		return nil, err
	}

	var cfg *Config
	if path != "" {
		cfg, err = LoadConfig(path)
	} else {
		cfg, err = LoadConfigFromDir(home)
	}
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(home)
	return cfg, nil
}
