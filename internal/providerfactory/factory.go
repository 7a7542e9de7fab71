// internal/providerfactory/factory.go
// Package providerfactory wires configured hosts to concrete provider implementations.
package providerfactory

import (
	"fmt"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/providers/llamacpp"
	"github.com/RNAdvani/kurukshetra/internal/providers/multiplex"
	"github.com/RNAdvani/kurukshetra/internal/providers/ollama"
)

// defaultHostType serves hosts with a blank type entry.
const defaultHostType = "ollama"

// New selects and configures the appropriate provider based on the
// application configuration. Configs mixing Ollama and llama.cpp hosts get a
// multiplexing provider that routes each call by host type.
func New(cfg *appconfig.Config) (providers.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("provider factory requires at least one configured host")
	}

	types := map[string]bool{}
	for _, host := range cfg.Hosts {
		hostType := strings.ToLower(strings.TrimSpace(host.Type))
		if hostType == "" {
			hostType = defaultHostType
		}
		switch hostType {
		case "ollama", "llamacpp":
			types[hostType] = true
		default:
			return nil, fmt.Errorf("unsupported host type %q for host %s", host.Type, host.Name)
		}
	}

	if len(types) == 1 {
		for hostType := range types {
			return newBackend(hostType, cfg), nil
		}
	}

	backends := make(map[string]providers.Provider, len(types))
	for hostType := range types {
		backends[hostType] = newBackend(hostType, cfg)
	}
	return multiplex.New(backends, defaultHostType)
}

func newBackend(hostType string, cfg *appconfig.Config) providers.Provider {
	if hostType == "llamacpp" {
		return llamacpp.New(cfg)
	}
	return ollama.New(cfg)
}
