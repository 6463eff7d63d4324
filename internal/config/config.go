package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents wcagcheck configuration options
type Config struct {
	// Language selects the catalog translation (en, de)
	Language string `yaml:"language"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written. Empty disables file logging.
	LogDir string `yaml:"log_dir"`

	// DBPath is the SQLite database holding saved test runs
	DBPath string `yaml:"db_path"`

	// CatalogPath replaces the embedded catalog with a YAML file when set
	CatalogPath string `yaml:"catalog_path"`

	// ExportDir is where reports are written
	ExportDir string `yaml:"export_dir"`

	// ExportFormat is the report format used when none is given (json, csv, markdown, html)
	ExportFormat string `yaml:"export_format"`
}

// Supported values for Validate
var (
	validLevels    = []string{"trace", "debug", "info", "warn", "error"}
	validLanguages = []string{"en", "de"}
	validFormats   = []string{"json", "csv", "markdown", "md", "html"}
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Language:     "en",
		LogLevel:     "info",
		LogDir:       filepath.Join(DirName, "logs"),
		DBPath:       filepath.Join(DirName, "runs.db"),
		CatalogPath:  "",
		ExportDir:    ".",
		ExportFormat: "json",
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed one is an error. Keys
// present in the file override the defaults, even when empty.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoding onto the defaults keeps every key the file omits.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromDir loads .wcagcheck/config.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, "config.yaml"))
}

// MergeWithFlags applies CLI flags over the configuration.
// Non-nil flag values take precedence over config file settings.
func (c *Config) MergeWithFlags(language, logLevel, logDir, catalogPath *string) {
	if language != nil {
		c.Language = *language
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if catalogPath != nil {
		c.CatalogPath = *catalogPath
	}
}

// ResolvePaths makes relative file settings absolute against base
func (c *Config) ResolvePaths(base string) {
	for _, p := range []*string{&c.LogDir, &c.DBPath, &c.CatalogPath, &c.ExportDir} {
		if *p != "" && *p != ":memory:" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !oneOf(c.LogLevel, validLevels) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	if !oneOf(c.Language, validLanguages) {
		return fmt.Errorf("invalid language %q, must be one of: en, de", c.Language)
	}
	if !oneOf(c.ExportFormat, validFormats) {
		return fmt.Errorf("invalid export_format %q, must be one of: json, csv, markdown, html", c.ExportFormat)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
