// internal/analysis/aspect.go

// Package analysis scores debate arguments along rhetorical aspects using a
// retrieval-augmented language-model pipeline, and aggregates per-aspect
// scores into a weighted comparison between two speakers.
package analysis

// Aspect is one rhetorical dimension being scored.
type Aspect string

const (
	AspectEthos  Aspect = "ethos"
	AspectPathos Aspect = "pathos"
	AspectLogos  Aspect = "logos"
	AspectStoic  Aspect = "stoic"
	AspectFacts  Aspect = "facts"
)

// Weights is the fixed aspect weight table. The facts aspect carries a
// weight here but is reported separately and excluded from the additive
// total, matching the behavior callers depend on.
var Weights = map[Aspect]float64{
	AspectEthos:  0.20,
	AspectPathos: 0.15,
	AspectLogos:  0.30,
	AspectStoic:  0.15,
	AspectFacts:  0.10,
}

// ScoredAspects lists the aspects evaluated per speaker through the scoring
// pipeline, in report order.
func ScoredAspects() []Aspect {
	return []Aspect{AspectEthos, AspectPathos, AspectLogos, AspectStoic}
}

// aspectFocus phrases what each aspect measures, for prompt construction.
var aspectFocus = map[Aspect]string{
	AspectEthos:  "credibility and trustworthiness of the speaker",
	AspectPathos: "emotional appeal and audience connection",
	AspectLogos:  "logical structure and evidence quality",
	AspectStoic:  "stoic reasoning quality and argumentative discipline",
}

// Valid reports whether a is a known aspect.
func (a Aspect) Valid() bool {
	_, ok := Weights[a]
	return ok
}
