// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests to model hosts.
	defaultRequestTimeout = 120 * time.Second
	// defaultRetrievalTopK is the number of nearest neighbours fetched per query
	// before staleness filtering.
	defaultRetrievalTopK = 5
	// defaultContextCap is the maximum number of retrieved documents embedded
	// into a prompt.
	defaultContextCap = 3
)

// Config represents the top-level application configuration.
type Config struct {
	Hosts              []Host `json:"hosts"`
	Debug              bool   `json:"debug"`
	TimeoutSeconds     int    `json:"timeout,omitempty"`
	LogFile            string `json:"logFile,omitempty"`
	CorpusIndexPath    string `json:"corpusIndexPath"`
	CorpusMetadataPath string `json:"corpusMetadataPath"`
	EmbeddingModel     string `json:"embeddingModel"`
	EmbeddingHost      string `json:"embeddingHost,omitempty"`
	RetrievalTopK      int    `json:"retrievalTopK,omitempty"`
	ContextCap         int    `json:"contextCap,omitempty"`
	PersonaDir         string `json:"personaDir,omitempty"`
	ConfigPath         string `json:"-"`
}

// Host represents a single host that can serve language models.
type Host struct {
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Type         string     `json:"type"`
	Models       []string   `json:"models"`
	SystemPrompt string     `json:"systemprompt,omitempty"`
	Parameters   Parameters `json:"parameters"`
}

// Parameters defines the set of parameters that can be used to control a
// language model's behavior.
type Parameters struct {
	TopK             *int     `json:"top_k,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	MinP             *float64 `json:"min_p,omitempty"`
	RepeatLastN      *int     `json:"repeat_last_n,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	RepeatPenalty    *float64 `json:"repeat_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back
// to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "kurukshetra.log"
}

// TopK returns the configured retrieval fan-out, falling back to the default.
func (c Config) TopK() int {
	if c.RetrievalTopK <= 0 {
		return defaultRetrievalTopK
	}
	return c.RetrievalTopK
}

// ContextLimit returns the maximum number of documents kept per retrieval.
func (c Config) ContextLimit() int {
	if c.ContextCap <= 0 {
		return defaultContextCap
	}
	return c.ContextCap
}

// GenerationHost returns the host used for language-model generation: the
// first configured host. An error is returned when no hosts are configured.
func (c Config) GenerationHost() (Host, error) {
	if len(c.Hosts) == 0 {
		return Host{}, errors.New("config must contain at least one host")
	}
	return c.Hosts[0], nil
}

// EmbeddingHostEntry resolves the host used for embedding requests. When
// embeddingHost names a configured host that host is used, otherwise the
// generation host serves embeddings too.
func (c Config) EmbeddingHostEntry() (Host, error) {
	name := strings.TrimSpace(c.EmbeddingHost)
	if name == "" {
		return c.GenerationHost()
	}
	for _, host := range c.Hosts {
		if host.Name == name {
			return host, nil
		}
	}
	return Host{}, fmt.Errorf("embeddingHost %q does not match any configured host", name)
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if len(config.Hosts) == 0 {
		return Config{}, errors.New("config must contain at least one host")
	}
	if strings.TrimSpace(config.EmbeddingModel) == "" {
		return Config{}, errors.New("config must set embeddingModel")
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
