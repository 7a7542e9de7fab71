// internal/server/config.go
package server

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// DefaultConfigPath is where the API server looks for its settings.
const DefaultConfigPath = "config/server.yml"

// Config holds the HTTP listener settings.
type Config struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout"`
	MaxBodyBytes   int64  `yaml:"maxBodyBytes"`
}

// LoadConfig reads the YAML server configuration from path, applying
// defaults for unset fields. A missing file yields the default config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read server config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse server config: %w", err)
		}
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port <= 0 {
		cfg.Port = 5000
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 300
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg, nil
}

// RequestTimeout returns the per-request analysis deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Addr renders the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
