// internal/factcheck/factcheck_test.go
package factcheck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/providers"
)

type scriptedGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, req providers.GenerateRequest) (providers.GenerateResult, error) {
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, req.Prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return providers.GenerateResult{}, g.errs[i]
	}
	if i < len(g.responses) {
		return providers.GenerateResult{Output: g.responses[i]}, nil
	}
	return providers.GenerateResult{Output: `{"verdict": "unverified", "confidence": 0, "summary": ""}`}, nil
}

func checkerConfig() *appconfig.Config {
	return &appconfig.Config{
		Hosts:          []appconfig.Host{{Name: "local", URL: "http://localhost:11434", Models: []string{"llama3.1:8b"}}},
		EmbeddingModel: "nomic-embed-text",
	}
}

func TestSplitClaims(t *testing.T) {
	claims := SplitClaims("The sky is blue. Water boils at 90C.  . Trailing")
	want := []string{"The sky is blue", "Water boils at 90C", "Trailing"}
	if len(claims) != len(want) {
		t.Fatalf("expected %d claims, got %d: %v", len(want), len(claims), claims)
	}
	for i := range want {
		if claims[i] != want[i] {
			t.Fatalf("claim %d: got %q, want %q", i, claims[i], want[i])
		}
	}
}

func TestCheckFlagsContradictedClaims(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		`{"verdict": "supported", "confidence": 8, "summary": "Common knowledge."}`,
		`{"verdict": "contradicted", "confidence": 9, "summary": "Water boils at 100C at sea level."}`,
	}}
	checker, err := New(checkerConfig(), gen)
	if err != nil {
		t.Fatal(err)
	}

	report := checker.Check(context.Background(), "physics", "The sky is blue. Water boils at 90C.")
	if !report.ContainsErrors {
		t.Fatal("expected ContainsErrors to be set")
	}
	if len(report.AllClaims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(report.AllClaims))
	}
	if len(report.IncorrectClaims) != 1 {
		t.Fatalf("expected 1 incorrect claim, got %d", len(report.IncorrectClaims))
	}
	if report.IncorrectClaims[0].Claim != "Water boils at 90C" {
		t.Fatalf("unexpected incorrect claim: %q", report.IncorrectClaims[0].Claim)
	}
	if !strings.Contains(gen.prompts[0], "physics") {
		t.Fatalf("prompt missing topic: %q", gen.prompts[0])
	}
}

func TestCheckDefaultsToUnverified(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"I cannot check this claim for you.",
		`{"verdict": "definitely true", "confidence": 99, "summary": "x"}`,
	}}
	checker, _ := New(checkerConfig(), gen)

	report := checker.Check(context.Background(), "history", "Claim one. Claim two.")
	if report.ContainsErrors {
		t.Fatal("unexpected ContainsErrors")
	}
	if len(report.AllClaims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(report.AllClaims))
	}
	if report.AllClaims[0].Verdict != VerdictUnverified {
		t.Fatalf("unparseable response should be unverified, got %q", report.AllClaims[0].Verdict)
	}
	if report.AllClaims[1].Verdict != VerdictUnverified {
		t.Fatalf("unknown verdict should normalize to unverified, got %q", report.AllClaims[1].Verdict)
	}
	if report.AllClaims[1].Confidence != 10 {
		t.Fatalf("confidence should clamp to 10, got %v", report.AllClaims[1].Confidence)
	}
}

func TestCheckSkipsFailedInvocations(t *testing.T) {
	gen := &scriptedGenerator{
		errs:      []error{errors.New("host down"), nil},
		responses: []string{"", `{"verdict": "supported", "confidence": 5, "summary": "ok"}`},
	}
	checker, _ := New(checkerConfig(), gen)

	report := checker.Check(context.Background(), "topic", "First. Second.")
	if len(report.AllClaims) != 1 {
		t.Fatalf("expected failed claim to be skipped, got %d claims", len(report.AllClaims))
	}
	if report.AllClaims[0].Claim != "Second" {
		t.Fatalf("unexpected surviving claim: %q", report.AllClaims[0].Claim)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, &scriptedGenerator{}); err == nil {
		t.Fatal("expected error for nil config")
	}
	cfg := checkerConfig()
	cfg.Hosts[0].Models = nil
	if _, err := New(cfg, &scriptedGenerator{}); err == nil {
		t.Fatal("expected error for host without models")
	}
}
