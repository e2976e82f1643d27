// Package config defines the application configuration types. These are
// pure data structures; loading, environment overrides, and validation
// live in the loader.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	HTTPS bool   `yaml:"https"`
}

// VaultConfig locates the markdown vault.
type VaultConfig struct {
	Path       string `yaml:"path"`
	AutoCreate bool   `yaml:"auto_create"`
	WatchFiles bool   `yaml:"watch_files"`
}

// SecurityConfig controls authentication and TLS material.
type SecurityConfig struct {
	APIKey           string `yaml:"api_key"`
	APIKeyFile       string `yaml:"api_key_file"`
	CertPath         string `yaml:"cert_path"`
	KeyPath          string `yaml:"key_path"`
	AutoGenerateCert bool   `yaml:"auto_generate_cert"`
}

// PeriodicNoteConfig describes one periodic note cadence.
type PeriodicNoteConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Folder   string `yaml:"folder"`
	Template string `yaml:"template"`
}

// PeriodicNotesConfig groups all periodic note cadences.
type PeriodicNotesConfig struct {
	Daily     PeriodicNoteConfig `yaml:"daily"`
	Weekly    PeriodicNoteConfig `yaml:"weekly"`
	Monthly   PeriodicNoteConfig `yaml:"monthly"`
	Quarterly PeriodicNoteConfig `yaml:"quarterly"`
	Yearly    PeriodicNoteConfig `yaml:"yearly"`
}

// SearchConfig bounds search behavior.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

// ActiveFileConfig controls active-file tracking.
type ActiveFileConfig struct {
	DefaultFile string `yaml:"default_file"`
}

// CommandsConfig controls the commands API.
type CommandsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// PerformanceConfig bounds request handling.
type PerformanceConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
}

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Vault         VaultConfig         `yaml:"vault"`
	Security      SecurityConfig      `yaml:"security"`
	PeriodicNotes PeriodicNotesConfig `yaml:"periodic_notes"`
	Search        SearchConfig        `yaml:"search"`
	ActiveFile    ActiveFileConfig    `yaml:"active_file"`
	Commands      CommandsConfig      `yaml:"commands"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

// NewConfig returns a configuration populated with defaults. The vault
// path has no default and must come from a file or the environment.
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  "127.0.0.1",
			Port:  27123,
			HTTPS: true,
		},
		Vault: VaultConfig{
			AutoCreate: true,
		},
		Security: SecurityConfig{
			CertPath:         "./certs/server.crt",
			KeyPath:          "./certs/server.key",
			AutoGenerateCert: true,
		},
		PeriodicNotes: PeriodicNotesConfig{
			Daily:     PeriodicNoteConfig{Enabled: true, Folder: "daily/"},
			Weekly:    PeriodicNoteConfig{Enabled: true, Folder: "weekly/"},
			Monthly:   PeriodicNoteConfig{Enabled: true, Folder: "monthly/"},
			Quarterly: PeriodicNoteConfig{Enabled: true, Folder: "quarterly/"},
			Yearly:    PeriodicNoteConfig{Enabled: true, Folder: "yearly/"},
		},
		Search: SearchConfig{
			MaxResults: 100,
		},
		Commands: CommandsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxFileSize: 10 * 1024 * 1024,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Vault.Path == "" {
		return fmt.Errorf("vault.path is required")
	}
	if !filepath.IsAbs(c.Vault.Path) {
		return fmt.Errorf("vault.path must be absolute, got %q", c.Vault.Path)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, fatal; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must not be negative, got %d", c.Search.MaxResults)
	}

	if c.Performance.MaxFileSize < 1 {
		return fmt.Errorf("performance.max_file_size must be positive, got %d", c.Performance.MaxFileSize)
	}

	return nil
}

// PeriodConfig returns the configuration for a named period, or false
// for an unknown name.
func (c *Config) PeriodConfig(period string) (PeriodicNoteConfig, bool) {
	switch period {
	case "daily":
		return c.PeriodicNotes.Daily, true
	case "weekly":
		return c.PeriodicNotes.Weekly, true
	case "monthly":
		return c.PeriodicNotes.Monthly, true
	case "quarterly":
		return c.PeriodicNotes.Quarterly, true
	case "yearly":
		return c.PeriodicNotes.Yearly, true
	default:
		return PeriodicNoteConfig{}, false
	}
}
