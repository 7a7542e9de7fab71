// internal/providers/multiplex/provider.go
// Package multiplex routes provider calls to per-host-type backends, allowing
// mixed Ollama and llama.cpp host configurations.
package multiplex

import (
	"context"
	"fmt"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/providers"
)

// Provider dispatches each request to the backend registered for the target
// host's type.
type Provider struct {
	backends map[string]providers.Provider
	fallback string
}

// New builds a multiplexing provider from a backend per host type. The
// fallback type serves hosts with a blank type.
func New(backends map[string]providers.Provider, fallback string) (*Provider, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("multiplex provider requires at least one backend")
	}
	if _, ok := backends[fallback]; !ok {
		return nil, fmt.Errorf("multiplex fallback type %q has no backend", fallback)
	}
	return &Provider{backends: backends, fallback: fallback}, nil
}

func (p *Provider) backendFor(host appconfig.Host) (providers.Provider, error) {
	hostType := strings.ToLower(strings.TrimSpace(host.Type))
	if hostType == "" {
		hostType = p.fallback
	}
	backend, ok := p.backends[hostType]
	if !ok {
		return nil, fmt.Errorf("no backend for host type %q (host %s)", host.Type, host.Name)
	}
	return backend, nil
}

// Generate forwards the request to the backend for the request's host.
func (p *Provider) Generate(ctx context.Context, req providers.GenerateRequest) (providers.GenerateResult, error) {
	backend, err := p.backendFor(req.Host)
	if err != nil {
		return providers.GenerateResult{}, err
	}
	return backend.Generate(ctx, req)
}

// Embed forwards the request to the backend for the given host.
func (p *Provider) Embed(ctx context.Context, host appconfig.Host, model, text string) ([]float32, error) {
	backend, err := p.backendFor(host)
	if err != nil {
		return nil, err
	}
	return backend.Embed(ctx, host, model, text)
}

// Close shuts down every backend, returning the first error encountered.
func (p *Provider) Close() error {
	var firstErr error
	for _, backend := range p.backends {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
