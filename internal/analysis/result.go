// internal/analysis/result.go
package analysis

import "github.com/RNAdvani/kurukshetra/internal/util"

// Field bounds applied when clamping a parsed model response.
const (
	maxExplanationRunes      = 400
	maxStoicExplanationRunes = 500
	maxHistoricalRunes       = 100
	maxListEntries           = 3
	maxSuggestionEntries     = 2
)

// Result is one aspect evaluation for one speaker. Score is always within
// [0, 10]; ancillary fields are populated for the stoic aspect only. Failure
// records why the evaluation degraded to its fallback, nil on success.
type Result struct {
	Aspect      Aspect   `json:"aspect"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	Historical  string   `json:"historical,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Failure     error    `json:"-"`
}

// fallbackResult is the neutral default returned when an evaluation cannot
// complete. The midpoint score keeps a failed analysis from biasing the
// aggregate comparison.
func fallbackResult(aspect Aspect, failure error) Result {
	r := Result{
		Aspect:      aspect,
		Score:       5.0,
		Explanation: "Could not generate analysis",
		Failure:     failure,
	}
	if aspect == AspectStoic {
		r.Weaknesses = []string{"Analysis unavailable"}
	}
	return r
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func clampList(items []string, max int) []string {
	if len(items) > max {
		items = items[:max]
	}
	out := items[:0]
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampText(text string, maxRunes int) string {
	return util.HeadRunes(text, maxRunes)
}
