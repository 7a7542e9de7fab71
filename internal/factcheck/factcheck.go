// internal/factcheck/factcheck.go

// Package factcheck splits an argument into sentence-level claims and asks
// a language model for a verdict on each. Checking is best-effort: claims
// whose responses cannot be parsed default to unverified, and transport
// failures yield an empty report rather than an error.
package factcheck

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/jsonrepair"
	"github.com/RNAdvani/kurukshetra/internal/providers"
)

// Verdicts a claim can receive. Anything else from the model is coerced to
// VerdictUnverified.
const (
	VerdictSupported    = "supported"
	VerdictContradicted = "contradicted"
	VerdictUnverified   = "unverified"
)

const maxResponseTokens = 256

// Claim is one checked statement.
type Claim struct {
	Claim      string  `json:"claim"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
	Context    string  `json:"context,omitempty"`
}

// Report aggregates the verdicts for one argument.
type Report struct {
	ContainsErrors  bool    `json:"contains_errors"`
	IncorrectClaims []Claim `json:"incorrect_claims"`
	AllClaims       []Claim `json:"all_claims"`
}

// Checker runs claim-level verification through a generation host.
type Checker struct {
	generator providers.Generator
	host      appconfig.Host
	model     string
	debug     bool
}

// New wires a Checker against the configured generation host.
func New(cfg *appconfig.Config, generator providers.Generator) (*Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	host, err := cfg.GenerationHost()
	if err != nil {
		return nil, err
	}
	if len(host.Models) == 0 {
		return nil, fmt.Errorf("host %q has no models configured", host.Name)
	}
	return &Checker{generator: generator, host: host, model: host.Models[0], debug: cfg.Debug}, nil
}

// Check verifies every sentence-level claim in text. Claims that fail to
// verify are skipped; a report is always returned.
func (c *Checker) Check(ctx context.Context, topic, text string) Report {
	report := Report{IncorrectClaims: []Claim{}, AllClaims: []Claim{}}

	for _, claim := range SplitClaims(text) {
		checked, err := c.checkClaim(ctx, topic, claim)
		if err != nil {
			if c.debug {
				log.Printf("[FACTCHECK] Skipping claim %q: %v", claim, err)
			}
			continue
		}
		report.AllClaims = append(report.AllClaims, checked)
		if checked.Verdict == VerdictContradicted {
			report.ContainsErrors = true
			report.IncorrectClaims = append(report.IncorrectClaims, checked)
		}
	}
	return report
}

func (c *Checker) checkClaim(ctx context.Context, topic, claim string) (Claim, error) {
	prompt := fmt.Sprintf(`Act as a professional fact-checker. Analyze this claim related to %s: %q
Provide JSON response with:
- verdict (supported/contradicted/unverified)
- confidence (0-10)
- summary (one sentence)
- context (important context if available)
Be objective and cite general knowledge, not specific sources.`, topic, claim)

	result, err := c.generator.Generate(ctx, providers.GenerateRequest{
		Host:       c.host,
		Model:      c.model,
		Prompt:     prompt,
		MaxTokens:  maxResponseTokens,
		Parameters: c.host.Parameters,
	})
	if err != nil {
		return Claim{}, err
	}

	var payload struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
		Summary    string  `json:"summary"`
		Context    string  `json:"context"`
	}
	checked := Claim{Claim: claim, Verdict: VerdictUnverified}
	if err := jsonrepair.Parse(result.Output, &payload); err != nil {
		// unparseable responses still count the claim, as unverified
		return checked, nil
	}

	checked.Verdict = normalizeVerdict(payload.Verdict)
	checked.Confidence = clampConfidence(payload.Confidence)
	checked.Summary = payload.Summary
	checked.Context = payload.Context
	return checked, nil
}

// SplitClaims breaks text into sentence-level claims on periods, dropping
// blanks.
func SplitClaims(text string) []string {
	parts := strings.Split(text, ".")
	claims := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		claims = append(claims, part)
	}
	return claims
}

func normalizeVerdict(verdict string) string {
	switch strings.ToLower(strings.TrimSpace(verdict)) {
	case VerdictSupported:
		return VerdictSupported
	case VerdictContradicted:
		return VerdictContradicted
	default:
		return VerdictUnverified
	}
}

func clampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 10 {
		return 10
	}
	return confidence
}
