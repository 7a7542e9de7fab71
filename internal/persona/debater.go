// internal/persona/debater.go
package persona

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/retrieval"
)

const (
	// history entries sent in the prompt vs retained overall
	promptHistoryDepth = 3
	retainedHistory    = 5

	maxResponseTokens = 2000
	retrievalFanOut   = 3
)

// ContextRetriever supplies reference documents for the debate prompt.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k, contextCap int) []corpus.Document
}

// Debater runs a turn-based debate as one persona, carrying a bounded
// exchange history across turns.
type Debater struct {
	persona   Persona
	generator providers.Generator
	retriever ContextRetriever
	host      appconfig.Host
	model     string
	rng       *rand.Rand

	mu      sync.Mutex
	history []string
}

// NewDebater wires a Debater for the named persona. retriever may be nil;
// seed pins the style transform's random choices.
func NewDebater(cfg *appconfig.Config, reg *Registry, name string, generator providers.Generator, retriever ContextRetriever, seed int64) (*Debater, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	p, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	host, err := cfg.GenerationHost()
	if err != nil {
		return nil, err
	}
	if len(host.Models) == 0 {
		return nil, fmt.Errorf("host %q has no models configured", host.Name)
	}
	return &Debater{
		persona:   p,
		generator: generator,
		retriever: retriever,
		host:      host,
		model:     host.Models[0],
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Persona returns the simulated character.
func (d *Debater) Persona() Persona { return d.persona }

// Respond generates the persona's reply to an opponent argument, applies
// the style transform, and records the exchange.
func (d *Debater) Respond(ctx context.Context, argument string) (string, error) {
	if strings.TrimSpace(argument) == "" {
		return "", fmt.Errorf("argument is empty")
	}

	var contextBlock string
	if d.retriever != nil {
		docs := d.retriever.Retrieve(ctx, argument, retrievalFanOut, retrievalFanOut)
		contextBlock = retrieval.FormatContext(docs)
	}

	prompt := d.buildPrompt(argument, contextBlock)
	result, err := d.generator.Generate(ctx, providers.GenerateRequest{
		Host:         d.host,
		Model:        d.model,
		SystemPrompt: d.host.SystemPrompt,
		Prompt:       prompt,
		MaxTokens:    maxResponseTokens,
		Parameters:   d.host.Parameters,
	})
	if err != nil {
		return "", fmt.Errorf("generate persona response: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	styled := ApplyStyle(strings.TrimSpace(result.Output), d.persona.Style, d.rng)
	d.history = append(d.history, fmt.Sprintf("Opponent: %s\nResponse: %s", argument, styled))
	if len(d.history) > retainedHistory {
		d.history = d.history[len(d.history)-retainedHistory:]
	}
	return styled, nil
}

// History returns a copy of the retained exchanges, oldest first.
func (d *Debater) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.history))
	copy(out, d.history)
	return out
}

func (d *Debater) buildPrompt(argument, contextBlock string) string {
	name := d.persona.DisplayName()

	d.mu.Lock()
	recent := d.history
	if len(recent) > promptHistoryDepth {
		recent = recent[len(recent)-promptHistoryDepth:]
	}
	exchanges := strings.Join(recent, "\n")
	d.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Act as %s in a formal debate. Follow these guidelines:\n", name)
	fmt.Fprintf(&b, "1. Rhetorical Style: %s\n", bulletList(d.persona.Profile.RhetoricalStyle))
	fmt.Fprintf(&b, "2. Argument Patterns: %s\n", bulletList(d.persona.Profile.ArgumentPatterns))
	fmt.Fprintf(&b, "3. Signature Phrases: %s\n\n", strings.Join(d.persona.Profile.SignaturePhrases, ", "))
	if contextBlock != "" {
		fmt.Fprintf(&b, "Debate Context:\n%s\n\n", contextBlock)
	}
	if exchanges != "" {
		fmt.Fprintf(&b, "Previous exchanges:\n%s\n\n", exchanges)
	}
	fmt.Fprintf(&b, "Opponent's Argument: %q\n\n", argument)
	fmt.Fprintf(&b, "Respond AS %s using:\n", name)
	fmt.Fprintf(&b, "- Sentence starters: %s\n", strings.Join(d.persona.Style.Openers, ", "))
	fmt.Fprintf(&b, "- Sentence endings: %s\n", strings.Join(d.persona.Style.SentenceEnders, ", "))
	fmt.Fprintf(&b, "\n%s:", name)
	return b.String()
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "\n- " + strings.Join(items, "\n- ")
}
