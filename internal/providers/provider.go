// internal/providers/provider.go

// Package providers defines the interfaces for interacting with external
// model-serving hosts. It provides a common abstraction layer for text
// generation and embedding, regardless of the underlying provider
// implementation.
package providers

import (
	"context"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
)

// GenerateRequest encapsulates a single non-streaming generation call.
type GenerateRequest struct {
	Host         appconfig.Host
	Model        string
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Parameters   appconfig.Parameters
}

// GenerateResult carries the model output plus timing metadata reported by
// the host.
type GenerateResult struct {
	Model           string
	Output          string
	TotalDuration   int64
	PromptEvalCount int
	EvalCount       int
}

// Generator produces free text from a prompt. Implementations make a single
// attempt per call; callers decide how failures degrade.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}

// Embedder converts text into an embedding vector. Deterministic per model
// version, no side effects.
type Embedder interface {
	Embed(ctx context.Context, host appconfig.Host, model, text string) ([]float32, error)
}

// Provider bundles the two external model capabilities behind one handle.
type Provider interface {
	Generator
	Embedder
	Close() error
}
