// internal/analysis/schema.go
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responsePayload is the decoded shape of a model response after schema
// validation. Pointer score distinguishes a missing field from zero.
type responsePayload struct {
	Score       *float64 `json:"score"`
	Explanation string   `json:"explanation"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Historical  string   `json:"historical"`
	Suggestions []string `json:"suggestions"`
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// Schemas type-check fields when present; missing fields fall back to
// documented defaults during clamping instead of failing the result.
var (
	simpleResponseSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":       map[string]any{"type": "number"},
			"explanation": map[string]any{"type": "string"},
		},
	}
	stoicResponseSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":       map[string]any{"type": "number"},
			"explanation": map[string]any{"type": "string"},
			"strengths":   stringList,
			"weaknesses":  stringList,
			"suggestions": stringList,
			"historical":  map[string]any{"type": "string"},
		},
	}
)

func schemaFor(aspect Aspect) map[string]any {
	if aspect == AspectStoic {
		return stoicResponseSchema
	}
	return simpleResponseSchema
}

// decodePayload validates the parsed object against the aspect's schema and
// converts it into a responsePayload.
func decodePayload(aspect Aspect, parsed map[string]any) (responsePayload, error) {
	schemaLoader := gojsonschema.NewGoLoader(schemaFor(aspect))
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(parsed))
	if err != nil {
		return responsePayload{}, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return responsePayload{}, fmt.Errorf("response failed validation: %s", strings.Join(details, "; "))
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return responsePayload{}, fmt.Errorf("re-encode response: %w", err)
	}
	var payload responsePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return responsePayload{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// toResult clamps a validated payload into a Result, substituting defaults
// for missing fields.
func (p responsePayload) toResult(aspect Aspect) Result {
	score := 5.0
	if p.Score != nil {
		score = clampScore(*p.Score)
	}
	explanation := p.Explanation
	if explanation == "" {
		explanation = "No explanation provided"
	}

	r := Result{Aspect: aspect, Score: score}
	if aspect == AspectStoic {
		r.Explanation = clampText(explanation, maxStoicExplanationRunes)
		r.Strengths = clampList(p.Strengths, maxListEntries)
		r.Weaknesses = clampList(p.Weaknesses, maxListEntries)
		r.Historical = clampText(p.Historical, maxHistoricalRunes)
		r.Suggestions = clampList(p.Suggestions, maxSuggestionEntries)
		return r
	}
	r.Explanation = clampText(explanation, maxExplanationRunes)
	return r
}
