package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, FRAGE_CONFIG env, ./frage.yaml,
//     ~/.config/frage/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. FRAGE_CONFIG environment variable
// 3. ./frage.yaml in the current directory
// 4. ~/.config/frage/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check FRAGE_CONFIG env var.
	if envPath := os.Getenv("FRAGE_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{"frage.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "frage", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields. FRAGE_*
// variables win over the config file; OPENAI_API_KEY is accepted as a
// fallback credential when neither FRAGE_API_KEY nor the file provides one.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FRAGE_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("FRAGE_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if cfg.API.APIKey == "" && cfg.API.APIKeyFile == "" {
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.API.APIKey = v
		}
	}
	if v := os.Getenv("FRAGE_ORG"); v != "" {
		cfg.API.Organization = v
	}
	if v := os.Getenv("FRAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("FRAGE_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	if v := os.Getenv("FRAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FRAGE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. The value field wins when both are set.
func resolveFileReferences(cfg *Config) error {
	// api.api_key_file -> api.api_key
	if cfg.API.APIKeyFile != "" && cfg.API.APIKey == "" {
		val, err := readSecretFile(cfg.API.APIKeyFile)
		if err != nil {
			return fmt.Errorf("api.api_key_file: %w", err)
		}
		cfg.API.APIKey = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
