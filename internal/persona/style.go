// internal/persona/style.go
package persona

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// ApplyStyle rewrites text into the persona's voice: a random opener is
// prepended to the first sentence, keyword replacements apply throughout,
// and a random ender is appended to the last sentence. rng drives the
// opener/ender choices so callers can pin them in tests.
func ApplyStyle(text string, style StyleTransform, rng *rand.Rand) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return text
	}

	replacements := compileReplacements(style.Replacements)
	transformed := make([]string, 0, len(sentences))
	for i, sent := range sentences {
		if i == 0 && len(style.Openers) > 0 {
			opener := style.Openers[rng.Intn(len(style.Openers))]
			sent = opener + " " + lowerFirst(sent)
		}
		for _, rep := range replacements {
			sent = rep.pattern.ReplaceAllString(sent, rep.replacement)
		}
		if i == len(sentences)-1 && len(style.SentenceEnders) > 0 {
			sent += " " + style.SentenceEnders[rng.Intn(len(style.SentenceEnders))]
		}
		transformed = append(transformed, sent)
	}
	return strings.Join(transformed, " ")
}

type compiledReplacement struct {
	pattern     *regexp.Regexp
	replacement string
}

// compileReplacements orders replacements by keyword so the transform is
// deterministic despite map iteration.
func compileReplacements(replacements map[string]string) []compiledReplacement {
	words := make([]string, 0, len(replacements))
	for word := range replacements {
		words = append(words, word)
	}
	sort.Strings(words)

	compiled := make([]compiledReplacement, 0, len(words))
	for _, word := range words {
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledReplacement{pattern: pattern, replacement: replacements[word]})
	}
	return compiled
}

// SplitSentences breaks text on terminal punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// swallow runs of terminal punctuation
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
		start = i + 1
	}
	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sentences = append(sentences, tail)
		}
	}
	return sentences
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
