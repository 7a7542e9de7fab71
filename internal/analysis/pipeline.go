// internal/analysis/pipeline.go
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/jsonrepair"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/retrieval"
	"github.com/RNAdvani/kurukshetra/internal/util"
)

// State labels a scoring pipeline stage. Each Score call walks
// Idle → Retrieving → Prompting → Invoking → ParsingResponse and finishes
// in Done or Fallback.
type State string

const (
	StateIdle            State = "idle"
	StateRetrieving      State = "retrieving"
	StatePrompting       State = "prompting"
	StateInvoking        State = "invoking"
	StateParsingResponse State = "parsing_response"
	StateDone            State = "done"
	StateFallback        State = "fallback"
)

// Prompt truncation bounds. Stoic analysis is open-ended and gets the
// shorter excerpt; the remaining aspects keep the classifier-era bound.
const (
	openEndedExcerptRunes  = 500
	classifierExcerptRunes = 512
	maxResponseTokens      = 512
)

// ContextRetriever supplies reference documents for prompt construction.
// A nil result means no context; scoring proceeds either way.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k, contextCap int) []corpus.Document
}

// Pipeline scores one aspect of one speaker's argument per Score call. No
// state persists across calls, so a single Pipeline is safe for concurrent
// use.
type Pipeline struct {
	cfg       *appconfig.Config
	generator providers.Generator
	retriever ContextRetriever
	host      appconfig.Host
	model     string
}

// NewPipeline wires a scoring pipeline. retriever may be nil, in which case
// every evaluation runs without reference context.
func NewPipeline(cfg *appconfig.Config, generator providers.Generator, retriever ContextRetriever) (*Pipeline, error) {
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
	return &Pipeline{
		cfg:       cfg,
		generator: generator,
		retriever: retriever,
		host:      host,
		model:     host.Models[0],
	}, nil
}

// Score evaluates one aspect of text in a debate about topic. It never
// returns an error: every failure degrades to the fallback result, with the
// failure reason recorded on the Result.
func (p *Pipeline) Score(ctx context.Context, aspect Aspect, topic, text string) Result {
	var contextBlock string
	if p.retriever != nil {
		docs := p.retriever.Retrieve(ctx, fmt.Sprintf("%s: %s", topic, text), p.cfg.TopK(), p.cfg.ContextLimit())
		contextBlock = retrieval.FormatContext(docs)
	}

	prompt := buildPrompt(aspect, topic, text, contextBlock)

	result, err := p.generator.Generate(ctx, providers.GenerateRequest{
		Host:       p.host,
		Model:      p.model,
		Prompt:     prompt,
		MaxTokens:  maxResponseTokens,
		Parameters: p.host.Parameters,
	})
	if err != nil {
		return p.fail(aspect, StateInvoking, fmt.Errorf("%w: %v", ErrModelInvocation, err))
	}

	var parsed map[string]any
	if err := jsonrepair.Parse(result.Output, &parsed); err != nil {
		return p.fail(aspect, StateParsingResponse, fmt.Errorf("%w: %v", ErrResponseParse, err))
	}
	payload, err := decodePayload(aspect, parsed)
	if err != nil {
		return p.fail(aspect, StateParsingResponse, fmt.Errorf("%w: %v", ErrResponseParse, err))
	}

	return payload.toResult(aspect)
}

func (p *Pipeline) fail(aspect Aspect, state State, reason error) Result {
	if p.cfg.Debug {
		log.Printf("[ANALYSIS] %s degraded to fallback during %s: %v", aspect, state, reason)
	}
	return fallbackResult(aspect, reason)
}

func buildPrompt(aspect Aspect, topic, text, contextBlock string) string {
	var b strings.Builder
	if aspect == AspectStoic {
		fmt.Fprintf(&b, "Analyze this argument about %s:\n\n", topic)
		fmt.Fprintf(&b, "Argument: %s\n\n", util.HeadRunes(text, openEndedExcerptRunes))
		if contextBlock != "" {
			fmt.Fprintf(&b, "%s\n\n", contextBlock)
		} else {
			b.WriteString("Context: No relevant context available\n\n")
		}
		b.WriteString(`Return JSON with:
{
    "score": 0-10,
    "weaknesses": ["top 3 weaknesses"],
    "strengths": ["top 3 strengths"],
    "historical": "historical comparison",
    "suggestions": ["improvement suggestions"],
    "explanation": "detailed analysis"
}`)
		return b.String()
	}

	fmt.Fprintf(&b, "Analyze the %s aspect of this debate argument about %s.\n\n", aspect, topic)
	fmt.Fprintf(&b, "Argument: %q\n\n", util.HeadRunes(text, classifierExcerptRunes))
	if contextBlock != "" {
		fmt.Fprintf(&b, "%s\n\n", contextBlock)
	}
	fmt.Fprintf(&b, "Focus specifically on %s.\n", aspectFocus[aspect])
	b.WriteString(`Return JSON with:
{
    "score": 0-10,
    "explanation": "2-3 concise sentences mentioning both strengths and weaknesses"
}`)
	return b.String()
}
