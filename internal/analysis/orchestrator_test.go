// internal/analysis/orchestrator_test.go
package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/RNAdvani/kurukshetra/internal/factcheck"
)

type stubChecker struct {
	report factcheck.Report
}

func (s stubChecker) Check(context.Context, string, string) factcheck.Report {
	return s.report
}

func scoreResponse(score string) string {
	return `{"score": ` + score + `, "explanation": "scripted"}`
}

func TestAnalyzeDebateAggregatesByAspect(t *testing.T) {
	gen := &promptGenerator{rules: []promptRule{
		{match: "ethos aspect of this debate argument", response: scoreResponse("8")},
		{match: "pathos aspect of this debate argument", response: scoreResponse("6")},
		{match: "logos aspect of this debate argument", response: scoreResponse("7")},
		{match: "Return JSON", response: `{"score": 5, "explanation": "stoic", "strengths": ["s"], "weaknesses": ["w"]}`},
	}}
	p, err := NewPipeline(pipelineConfig(), gen, nil)
	if err != nil {
		t.Fatal(err)
	}
	o, err := NewOrchestrator(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := o.AnalyzeDebate(context.Background(), "tax policy", "argument one", "argument two")
	if err != nil {
		t.Fatalf("AnalyzeDebate error: %v", err)
	}

	// both speakers hit the same scripted responses, so totals tie
	// 8*0.20 + 6*0.15 + 7*0.30 + 5*0.15 = 5.35
	if math.Abs(got.Total.Person1-5.35) > 1e-9 || math.Abs(got.Total.Person2-5.35) > 1e-9 {
		t.Fatalf("unexpected totals: %+v", got.Total)
	}
	if got.Total.Winner != SpeakerPerson2 {
		t.Fatalf("total tie should resolve to person2, got %q", got.Total.Winner)
	}
	if got.Ethos.Scores[SpeakerPerson1] != 8 || got.Logos.Scores[SpeakerPerson2] != 7 {
		t.Fatalf("aspect scores misrouted: ethos=%+v logos=%+v", got.Ethos.Scores, got.Logos.Scores)
	}
	if got.Ethos.Leading != SpeakerPerson2 {
		t.Fatalf("aspect tie should resolve to person2, got %q", got.Ethos.Leading)
	}
	if got.Stoic.Details[SpeakerPerson1].Strengths[0] != "s" {
		t.Fatalf("stoic details missing: %+v", got.Stoic.Details)
	}
	if got.Facts.Leading != "none" || len(got.Facts.AllClaims) != 0 {
		t.Fatalf("facts without checker should be empty: %+v", got.Facts)
	}
}

func TestAnalyzeDebateLogosOrdering(t *testing.T) {
	weak := "Taxes should be lower because it's obviously best for everyone"
	strong := "Studies from three independent economists show a 2% GDP increase under similar tax cuts in comparable economies"

	gen := &promptGenerator{rules: []promptRule{
		{match: "logos aspect of this debate argument about tax policy.\n\nArgument: \"Studies", response: scoreResponse("8.5")},
		{match: "logos aspect", response: scoreResponse("3.0")},
		{match: "", response: scoreResponse("5")},
	}}
	p, _ := NewPipeline(pipelineConfig(), gen, nil)
	o, _ := NewOrchestrator(p, nil)

	got, err := o.AnalyzeDebate(context.Background(), "tax policy", weak, strong)
	if err != nil {
		t.Fatal(err)
	}
	if got.Logos.Scores[SpeakerPerson2] < got.Logos.Scores[SpeakerPerson1] {
		t.Fatalf("evidence-backed argument should score at least as high on logos: %+v", got.Logos.Scores)
	}
	if got.Logos.Leading != SpeakerPerson2 {
		t.Fatalf("expected person2 leading on logos, got %q", got.Logos.Leading)
	}
	if got.Logos.Difference != 5.5 {
		t.Fatalf("unexpected logos difference: %v", got.Logos.Difference)
	}
}

func TestAnalyzeDebateIsolatesFailures(t *testing.T) {
	// every call fails, yet a complete report with fallback scores returns
	gen := &promptGenerator{err: context.DeadlineExceeded}
	p, _ := NewPipeline(pipelineConfig(), gen, nil)
	o, _ := NewOrchestrator(p, nil)

	got, err := o.AnalyzeDebate(context.Background(), "topic", "one", "two")
	if err != nil {
		t.Fatalf("failures must not abort the request: %v", err)
	}
	for _, report := range []AspectReport{got.Ethos, got.Pathos, got.Logos, got.Stoic} {
		if report.Scores[SpeakerPerson1] != 5.0 || report.Scores[SpeakerPerson2] != 5.0 {
			t.Fatalf("expected fallback scores, got %+v", report.Scores)
		}
	}
	// 5.0 * (0.20+0.15+0.30+0.15)
	if math.Abs(got.Total.Person1-4.0) > 1e-9 {
		t.Fatalf("unexpected fallback total: %v", got.Total.Person1)
	}
}

func TestAnalyzeDebateValidation(t *testing.T) {
	gen := &promptGenerator{}
	p, _ := NewPipeline(pipelineConfig(), gen, nil)
	o, _ := NewOrchestrator(p, nil)

	if _, err := o.AnalyzeDebate(context.Background(), "", "a", "b"); err == nil {
		t.Fatal("expected validation error for missing topic")
	}
	if _, err := o.AnalyzeDebate(context.Background(), "topic", "a", " "); err == nil {
		t.Fatal("expected validation error for empty speaker")
	}
}

func TestAnalyzeDebateIncludesFactReport(t *testing.T) {
	gen := &promptGenerator{rules: []promptRule{{match: "", response: scoreResponse("5")}}}
	p, _ := NewPipeline(pipelineConfig(), gen, nil)
	checker := stubChecker{report: factcheck.Report{
		ContainsErrors: true,
		IncorrectClaims: []factcheck.Claim{
			{Claim: "Water boils at 90C", Verdict: factcheck.VerdictContradicted, Confidence: 9},
		},
		AllClaims: []factcheck.Claim{
			{Claim: "Water boils at 90C", Verdict: factcheck.VerdictContradicted, Confidence: 9},
		},
	}}
	o, _ := NewOrchestrator(p, checker)

	got, err := o.AnalyzeDebate(context.Background(), "physics", "Water boils at 90C", "It does not")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Facts.ContainsErrors || len(got.Facts.IncorrectClaims) != 1 {
		t.Fatalf("fact report not propagated: %+v", got.Facts)
	}
}

func TestAnalyzeMessage(t *testing.T) {
	gen := &promptGenerator{rules: []promptRule{
		{match: "ethos aspect", response: scoreResponse("8")},
		{match: "pathos aspect", response: scoreResponse("6")},
		{match: "logos aspect", response: scoreResponse("7")},
		{match: "", response: scoreResponse("5")},
	}}
	p, _ := NewPipeline(pipelineConfig(), gen, nil)
	o, _ := NewOrchestrator(p, nil)

	prior := strings.Repeat("old context ", 300)
	got, err := o.AnalyzeMessage(context.Background(), "tax policy", "new message", prior)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Analysis) != 4 {
		t.Fatalf("expected 4 aspect entries, got %d", len(got.Analysis))
	}
	if math.Abs(got.TotalScore-5.35) > 1e-9 {
		t.Fatalf("unexpected weighted total: %v", got.TotalScore)
	}
	if got.Analysis[0].Aspect != AspectEthos || got.Analysis[0].WeightedScore != 8*0.20 {
		t.Fatalf("unexpected first entry: %+v", got.Analysis[0])
	}
	if len(got.Context) > 2000 {
		t.Fatalf("rolling context not capped: %d", len(got.Context))
	}
	if !strings.HasSuffix(got.Context, "new message") {
		t.Fatalf("rolling context should end with the new message: %q", got.Context[len(got.Context)-40:])
	}

	if _, err := o.AnalyzeMessage(context.Background(), "topic", " ", ""); err == nil {
		t.Fatal("expected validation error for empty message")
	}
}
