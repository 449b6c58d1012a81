// Package config provides unified configuration for frage command-line
// tools and for programs that want file-based client setup.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (FRAGE_ prefix, OPENAI_API_KEY fallback)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"time"

	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/modelid"
)

// Config holds all settings the frage tools understand.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Chat    ChatConfig    `yaml:"chat"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds connection settings for the backend.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`     // default: https://api.openai.com/v1/
	APIKey       string        `yaml:"api_key"`      // required (or via env / api_key_file)
	APIKeyFile   string        `yaml:"api_key_file"` // _file variant for api_key
	Organization string        `yaml:"organization"` // optional
	Timeout      time.Duration `yaml:"timeout"`      // default: 60s, 0 disables
}

// ChatConfig holds defaults for the interactive chat tool.
type ChatConfig struct {
	Model       string   `yaml:"model"`       // default: gpt-4o-mini
	Temperature *float64 `yaml:"temperature"` // optional
	System      string   `yaml:"system"`      // optional system prompt
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error", default: "info"
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: client.DefaultBaseURL,
			Timeout: 60 * time.Second,
		},
		Chat: ChatConfig{
			Model: modelid.GPT4oMini.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Client builds a client.Client from the API settings.
func (c *Config) Client() (*client.Client, error) {
	opts := []client.Option{
		client.WithBaseURL(c.API.BaseURL),
		client.WithAPIKey(c.API.APIKey),
		client.WithTimeout(c.API.Timeout),
	}
	if c.API.Organization != "" {
		opts = append(opts, client.WithOrganization(c.API.Organization))
	}
	return client.New(opts...)
}
