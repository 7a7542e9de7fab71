// internal/analysis/orchestrator.go
package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/RNAdvani/kurukshetra/internal/factcheck"
	"github.com/RNAdvani/kurukshetra/internal/util"
)

// Speaker identifiers used throughout analysis reports.
const (
	SpeakerPerson1 = "person1"
	SpeakerPerson2 = "person2"
)

// rollingContextRunes bounds the conversation context echoed back by
// message analysis.
const rollingContextRunes = 2000

// AspectReport compares the two speakers on one aspect. Leading holds the
// speaker with the strictly greater score; ties resolve to person2.
type AspectReport struct {
	Scores       map[string]float64 `json:"scores"`
	Explanations map[string]string  `json:"explanations"`
	Details      map[string]Result  `json:"details,omitempty"`
	Difference   float64            `json:"difference"`
	Leading      string             `json:"leading"`
}

// FactsReport carries claim verification results for the combined
// transcript. It never influences the additive totals.
type FactsReport struct {
	ContainsErrors  bool              `json:"contains_errors"`
	IncorrectClaims []factcheck.Claim `json:"incorrect_claims"`
	AllClaims       []factcheck.Claim `json:"all_claims"`
	Difference      float64           `json:"difference"`
	Leading         string            `json:"leading"`
}

// TotalReport is the weighted aggregate. Winner holds the speaker with the
// strictly greater total; ties resolve to person2.
type TotalReport struct {
	Person1 float64 `json:"person1"`
	Person2 float64 `json:"person2"`
	Winner  string  `json:"winner"`
}

// DebateAnalysis is the full per-aspect comparison of a two-speaker debate.
type DebateAnalysis struct {
	Ethos  AspectReport `json:"ethos"`
	Pathos AspectReport `json:"pathos"`
	Logos  AspectReport `json:"logos"`
	Stoic  AspectReport `json:"stoic"`
	Facts  FactsReport  `json:"facts"`
	Total  TotalReport  `json:"total"`
}

// MessageAspect is one aspect evaluation within a single-message analysis.
type MessageAspect struct {
	Aspect        Aspect  `json:"aspect"`
	RawScore      float64 `json:"raw_score"`
	WeightedScore float64 `json:"weighted_score"`
	Explanation   string  `json:"explanation"`
}

// MessageAnalysis scores one speaker's message against the rolling
// conversation context.
type MessageAnalysis struct {
	Analysis   []MessageAspect `json:"analysis"`
	Facts      FactsReport     `json:"facts"`
	TotalScore float64         `json:"total_score"`
	Context    string          `json:"context"`
}

// FactChecker verifies claims in a block of text.
type FactChecker interface {
	Check(ctx context.Context, topic, text string) factcheck.Report
}

// Orchestrator fans ScoringPipeline evaluations out across aspects and
// speakers and aggregates them deterministically by aspect key.
type Orchestrator struct {
	pipeline *Pipeline
	checker  FactChecker
}

// NewOrchestrator wires an Orchestrator. checker may be nil, in which case
// the facts section of every report is empty.
func NewOrchestrator(pipeline *Pipeline, checker FactChecker) (*Orchestrator, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline is nil")
	}
	return &Orchestrator{pipeline: pipeline, checker: checker}, nil
}

type evaluationKey struct {
	aspect  Aspect
	speaker string
}

// AnalyzeDebate scores both speakers on every aspect. Aspect evaluations
// have no data dependencies and run concurrently; every failure is isolated
// to its aspect/speaker cell, so a complete report is always returned.
func (o *Orchestrator) AnalyzeDebate(ctx context.Context, topic, person1Text, person2Text string) (*DebateAnalysis, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if strings.TrimSpace(person1Text) == "" || strings.TrimSpace(person2Text) == "" {
		return nil, fmt.Errorf("%w: both speakers need at least one utterance", ErrValidation)
	}

	texts := map[string]string{
		SpeakerPerson1: person1Text,
		SpeakerPerson2: person2Text,
	}

	results := make(map[evaluationKey]Result)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, aspect := range ScoredAspects() {
		for speaker, text := range texts {
			wg.Add(1)
			go func(aspect Aspect, speaker, text string) {
				defer wg.Done()
				r := o.pipeline.Score(ctx, aspect, topic, text)
				mu.Lock()
				results[evaluationKey{aspect, speaker}] = r
				mu.Unlock()
			}(aspect, speaker, text)
		}
	}
	wg.Wait()

	report := &DebateAnalysis{
		Ethos:  buildAspectReport(results, AspectEthos),
		Pathos: buildAspectReport(results, AspectPathos),
		Logos:  buildAspectReport(results, AspectLogos),
		Stoic:  buildAspectReport(results, AspectStoic),
	}
	report.Facts = o.checkFacts(ctx, topic, fmt.Sprintf("%s.%s", person1Text, person2Text))
	report.Total = buildTotals(results)
	return report, nil
}

// AnalyzeMessage scores a single message, carrying forward a rolling
// conversation context. Facts are checked over the combined text.
func (o *Orchestrator) AnalyzeMessage(ctx context.Context, topic, message, priorContext string) (*MessageAnalysis, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	fullText := strings.TrimSpace(strings.TrimSpace(priorContext) + " " + message)

	out := &MessageAnalysis{}
	for _, aspect := range ScoredAspects() {
		r := o.pipeline.Score(ctx, aspect, topic, fullText)
		weighted := r.Score * Weights[aspect]
		out.TotalScore += weighted
		out.Analysis = append(out.Analysis, MessageAspect{
			Aspect:        aspect,
			RawScore:      r.Score,
			WeightedScore: weighted,
			Explanation:   r.Explanation,
		})
	}
	out.Facts = o.checkFacts(ctx, topic, fullText)
	out.Context = util.TailRunes(fullText, rollingContextRunes)
	return out, nil
}

func (o *Orchestrator) checkFacts(ctx context.Context, topic, text string) FactsReport {
	report := FactsReport{
		IncorrectClaims: []factcheck.Claim{},
		AllClaims:       []factcheck.Claim{},
		Leading:         "none",
	}
	if o.checker == nil {
		return report
	}
	checked := o.checker.Check(ctx, topic, text)
	report.ContainsErrors = checked.ContainsErrors
	if checked.IncorrectClaims != nil {
		report.IncorrectClaims = checked.IncorrectClaims
	}
	if checked.AllClaims != nil {
		report.AllClaims = checked.AllClaims
	}
	return report
}

func buildAspectReport(results map[evaluationKey]Result, aspect Aspect) AspectReport {
	p1 := results[evaluationKey{aspect, SpeakerPerson1}]
	p2 := results[evaluationKey{aspect, SpeakerPerson2}]

	leading := SpeakerPerson2
	if p1.Score > p2.Score {
		leading = SpeakerPerson1
	}

	report := AspectReport{
		Scores: map[string]float64{
			SpeakerPerson1: p1.Score,
			SpeakerPerson2: p2.Score,
		},
		Explanations: map[string]string{
			SpeakerPerson1: p1.Explanation,
			SpeakerPerson2: p2.Explanation,
		},
		Difference: math.Abs(p1.Score - p2.Score),
		Leading:    leading,
	}
	if aspect == AspectStoic {
		report.Details = map[string]Result{
			SpeakerPerson1: p1,
			SpeakerPerson2: p2,
		}
	}
	return report
}

func buildTotals(results map[evaluationKey]Result) TotalReport {
	var totals TotalReport
	for _, aspect := range ScoredAspects() {
		weight := Weights[aspect]
		totals.Person1 += results[evaluationKey{aspect, SpeakerPerson1}].Score * weight
		totals.Person2 += results[evaluationKey{aspect, SpeakerPerson2}].Score * weight
	}
	totals.Winner = SpeakerPerson2
	if totals.Person1 > totals.Person2 {
		totals.Winner = SpeakerPerson1
	}
	return totals
}
