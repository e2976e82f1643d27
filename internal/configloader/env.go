package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mdvault/mdvaultd/pkg/config"
)

// envVarPrefix is the prefix for all mdvaultd environment variables.
const envVarPrefix = "MDVAULT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeInt64
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config
// fields. The naming convention is SECTION__KEY.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SERVER__HOST":                   {field: "server.host", typ: envTypeString},
	"SERVER__PORT":                   {field: "server.port", typ: envTypeInt},
	"SERVER__HTTPS":                  {field: "server.https", typ: envTypeBool},
	"VAULT__PATH":                    {field: "vault.path", typ: envTypeString},
	"VAULT__AUTO_CREATE":             {field: "vault.auto_create", typ: envTypeBool},
	"VAULT__WATCH_FILES":             {field: "vault.watch_files", typ: envTypeBool},
	"SECURITY__API_KEY":              {field: "security.api_key", typ: envTypeString},
	"SECURITY__API_KEY_FILE":         {field: "security.api_key_file", typ: envTypeString},
	"SECURITY__CERT_PATH":            {field: "security.cert_path", typ: envTypeString},
	"SECURITY__KEY_PATH":             {field: "security.key_path", typ: envTypeString},
	"SECURITY__AUTO_GENERATE_CERT":   {field: "security.auto_generate_cert", typ: envTypeBool},
	"SEARCH__MAX_RESULTS":            {field: "search.max_results", typ: envTypeInt},
	"ACTIVE_FILE__DEFAULT_FILE":      {field: "active_file.default_file", typ: envTypeString},
	"COMMANDS__ENABLED":              {field: "commands.enabled", typ: envTypeBool},
	"LOGGING__LEVEL":                 {field: "logging.level", typ: envTypeString},
	"LOGGING__FORMAT":                {field: "logging.format", typ: envTypeString},
	"PERFORMANCE__MAX_FILE_SIZE":     {field: "performance.max_file_size", typ: envTypeInt64},
	"PERIODIC_NOTES__DAILY__ENABLED": {field: "periodic_notes.daily.enabled", typ: envTypeBool},
	"PERIODIC_NOTES__DAILY__FOLDER":  {field: "periodic_notes.daily.folder", typ: envTypeString},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDVAULT_ (e.g., MDVAULT_VAULT__PATH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeInt64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setInt64Field(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "server.host":
		cfg.Server.Host = value
	case "vault.path":
		cfg.Vault.Path = value
	case "security.api_key":
		cfg.Security.APIKey = value
	case "security.api_key_file":
		cfg.Security.APIKeyFile = value
	case "security.cert_path":
		cfg.Security.CertPath = value
	case "security.key_path":
		cfg.Security.KeyPath = value
	case "active_file.default_file":
		cfg.ActiveFile.DefaultFile = value
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	case "periodic_notes.daily.folder":
		cfg.PeriodicNotes.Daily.Folder = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "server.https":
		cfg.Server.HTTPS = value
	case "vault.auto_create":
		cfg.Vault.AutoCreate = value
	case "vault.watch_files":
		cfg.Vault.WatchFiles = value
	case "security.auto_generate_cert":
		cfg.Security.AutoGenerateCert = value
	case "commands.enabled":
		cfg.Commands.Enabled = value
	case "periodic_notes.daily.enabled":
		cfg.PeriodicNotes.Daily.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "server.port":
		cfg.Server.Port = value
	case "search.max_results":
		cfg.Search.MaxResults = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setInt64Field sets a 64-bit integer field on the config by field path.
func setInt64Field(cfg *config.Config, field string, value int64) error {
	switch field {
	case "performance.max_file_size":
		cfg.Performance.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MDVAULT_SERVER__HOST":                   "Bind address for the API server",
		"MDVAULT_SERVER__PORT":                   "Listen port (default 27123)",
		"MDVAULT_SERVER__HTTPS":                  "Serve TLS: true or false",
		"MDVAULT_VAULT__PATH":                    "Path to the markdown vault",
		"MDVAULT_VAULT__AUTO_CREATE":             "Create the vault directory if missing: true or false",
		"MDVAULT_VAULT__WATCH_FILES":             "Watch the vault for external changes: true or false",
		"MDVAULT_SECURITY__API_KEY":              "Bearer token for API authentication",
		"MDVAULT_SECURITY__API_KEY_FILE":         "File containing the bearer token",
		"MDVAULT_SECURITY__CERT_PATH":            "TLS certificate path",
		"MDVAULT_SECURITY__KEY_PATH":             "TLS private key path",
		"MDVAULT_SECURITY__AUTO_GENERATE_CERT":   "Generate a self-signed certificate if missing: true or false",
		"MDVAULT_SEARCH__MAX_RESULTS":            "Maximum search results per query",
		"MDVAULT_ACTIVE_FILE__DEFAULT_FILE":      "Fallback active file path",
		"MDVAULT_COMMANDS__ENABLED":              "Enable the commands API: true or false",
		"MDVAULT_LOGGING__LEVEL":                 "Log level: debug, info, warn, error, or fatal",
		"MDVAULT_LOGGING__FORMAT":                "Log format: text or json",
		"MDVAULT_PERFORMANCE__MAX_FILE_SIZE":     "Maximum request body size in bytes",
		"MDVAULT_PERIODIC_NOTES__DAILY__ENABLED": "Enable daily notes: true or false",
		"MDVAULT_PERIODIC_NOTES__DAILY__FOLDER":  "Folder for daily notes",
	}
}
