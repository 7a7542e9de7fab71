// internal/jsonrepair/repair.go

// Package jsonrepair extracts and decodes JSON objects from untrusted model
// output. Repair is a bounded sequence of textual transforms, not a parser;
// when it cannot produce valid JSON the caller falls back to a default.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnparseable reports that no decodable JSON object was found, even
// after repair.
var ErrUnparseable = errors.New("no parseable JSON object in response")

var (
	objectSpan    = regexp.MustCompile(`(?s)\{.*\}`)
	bareKey       = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Repair applies the fixed transform sequence to raw text: escape unescaped
// quotes, strip control characters, quote bare object keys, and drop
// trailing commas. The order matters and is part of the contract.
func Repair(raw string) string {
	raw = escapeQuotes(raw)
	raw = stripControl(raw)
	raw = bareKey.ReplaceAllString(raw, `$1"$2"$3`)
	raw = trailingComma.ReplaceAllString(raw, `$1`)
	return raw
}

// Parse decodes the outermost {...} span of raw into v. Valid JSON decodes
// directly; otherwise the span is repaired once and retried. Returns
// ErrUnparseable when no span exists or both attempts fail.
func Parse(raw string, v any) error {
	span := objectSpan.FindString(raw)
	if span == "" {
		return fmt.Errorf("%w: no object span found", ErrUnparseable)
	}
	if err := json.Unmarshal([]byte(span), v); err == nil {
		return nil
	}
	repaired := Repair(span)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return nil
}

func escapeQuotes(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '"' && (i == 0 || raw[i-1] != '\\') {
			b.WriteString(`\"`)
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

func stripControl(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c <= 0x1F || c == 0x7F {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
