// Package configloader resolves the application configuration: YAML
// file, environment overrides, validation, and API key resolution.
package configloader

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mdvault/mdvaultd/pkg/config"
)

// defaultConfigFile is picked up from the working directory when no
// explicit path is given.
const defaultConfigFile = "mdvault.yaml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// ExplicitPath is an explicit config file path (from --config).
	// If empty, mdvault.yaml in the working directory is used when
	// present.
	ExplicitPath string

	// IgnoreEnv skips environment variable overrides.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final validated configuration.
	Config *config.Config

	// LoadedFrom is the config file that was read, if any.
	LoadedFrom string

	// GeneratedAPIKey is true when no key was configured and a fresh
	// one was generated. The caller should surface it to the operator.
	GeneratedAPIKey bool
}

// Load resolves the final configuration. Precedence (highest first):
// environment variables, the config file, defaults. The API key is
// resolved afterwards: direct value, key file, or generated.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}
	cfg := config.NewConfig()

	path := opts.ExplicitPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
		result.LoadedFrom = path
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Vault.Path != "" {
		expanded, err := expandPath(cfg.Vault.Path)
		if err != nil {
			return nil, err
		}
		cfg.Vault.Path = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	generated, err := resolveAPIKey(&cfg.Security)
	if err != nil {
		return nil, err
	}
	result.GeneratedAPIKey = generated

	if cfg.Vault.AutoCreate {
		if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create vault directory: %w", err)
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile unmarshals YAML over the defaults, so absent keys keep
// their default values.
func loadConfigFile(path string, cfg *config.Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// resolveAPIKey fills Security.APIKey: direct value, key file, or a
// freshly generated 64-hex-character key. Reports whether a key was
// generated.
func resolveAPIKey(sec *config.SecurityConfig) (bool, error) {
	if sec.APIKey != "" {
		return false, nil
	}

	if sec.APIKeyFile != "" {
		path, err := expandPath(sec.APIKeyFile)
		if err != nil {
			return false, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read API key file: %w", err)
		}
		key := strings.TrimSpace(string(content))
		if key == "" {
			return false, fmt.Errorf("API key file is empty: %s", sec.APIKeyFile)
		}
		sec.APIKey = key
		return false, nil
	}

	key, err := GenerateAPIKey()
	if err != nil {
		return false, err
	}
	sec.APIKey = key
	return true, nil
}

// GenerateAPIKey returns a 64-character hexadecimal key from a secure
// random source.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate API key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
