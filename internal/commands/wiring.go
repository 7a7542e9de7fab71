// internal/commands/wiring.go
package commands

import (
	"context"
	"time"

	"github.com/RNAdvani/kurukshetra/internal/analysis"
	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/factcheck"
	"github.com/RNAdvani/kurukshetra/internal/persona"
	"github.com/RNAdvani/kurukshetra/internal/providerfactory"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/retrieval"
	"github.com/RNAdvani/kurukshetra/internal/server"
)

// components bundles the wired pipeline pieces shared by the serve, analyze,
// and debate commands.
type components struct {
	provider     providers.Provider
	retriever    *retrieval.Retriever
	orchestrator *analysis.Orchestrator
	registry     *persona.Registry
}

// buildComponents constructs the full pipeline from the loaded config,
// rebuilding the corpus index when it is stale.
func buildComponents(ctx context.Context, cfg *appconfig.Config) (*components, error) {
	provider, err := providerfactory.New(cfg)
	if err != nil {
		return nil, err
	}

	c, err := corpus.Load(ctx, cfg, provider)
	if err != nil {
		provider.Close()
		return nil, err
	}
	retriever, err := retrieval.New(cfg, provider, c)
	if err != nil {
		provider.Close()
		return nil, err
	}

	pipeline, err := analysis.NewPipeline(cfg, provider, retriever)
	if err != nil {
		provider.Close()
		return nil, err
	}
	checker, err := factcheck.New(cfg, provider)
	if err != nil {
		provider.Close()
		return nil, err
	}
	orchestrator, err := analysis.NewOrchestrator(pipeline, checker)
	if err != nil {
		provider.Close()
		return nil, err
	}

	registry, err := persona.LoadRegistry(cfg.PersonaDir)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &components{
		provider:     provider,
		retriever:    retriever,
		orchestrator: orchestrator,
		registry:     registry,
	}, nil
}

// debaterFactory adapts the persona package into the server's session
// factory, seeding each debater from the wall clock.
func (c *components) debaterFactory(cfg *appconfig.Config) server.DebaterFactory {
	return func(name string) (server.DebateResponder, error) {
		return persona.NewDebater(cfg, c.registry, name, c.provider, c.retriever, time.Now().UnixNano())
	}
}

func (c *components) close() {
	_ = c.provider.Close()
}
