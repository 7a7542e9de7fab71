// internal/persona/persona.go

// Package persona simulates debate opponents with fixed rhetorical
// profiles. A persona is a prompt-side profile (style, patterns, signature
// phrases) plus a post-generation style transform (openers, keyword
// replacements, sentence enders).
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Profile describes how a persona argues, injected into the prompt.
type Profile struct {
	RhetoricalStyle  []string `json:"rhetorical_style"`
	ArgumentPatterns []string `json:"argument_patterns"`
	SignaturePhrases []string `json:"signature_phrases"`
}

// StyleTransform rewrites generated text into the persona's voice.
type StyleTransform struct {
	Replacements   map[string]string `json:"replacements"`
	SentenceEnders []string          `json:"sentence_enders"`
	Openers        []string          `json:"openers"`
}

// Persona is one debate character.
type Persona struct {
	Name    string         `json:"name"`
	Profile Profile        `json:"profile"`
	Style   StyleTransform `json:"style_transform"`
}

// DisplayName renders the persona key as a title, "donald_trump" becoming
// "Donald Trump".
func (p Persona) DisplayName() string {
	words := strings.Split(p.Name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Registry holds the available personas.
type Registry struct {
	personas map[string]Persona
}

// LoadRegistry returns the built-in personas, overlaid with any *.json
// persona files found under dir. An empty dir loads only the built-ins.
func LoadRegistry(dir string) (*Registry, error) {
	reg := &Registry{personas: map[string]Persona{}}
	for _, p := range builtinPersonas() {
		reg.personas[p.Name] = p
	}

	if strings.TrimSpace(dir) == "" {
		return reg, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("read persona directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read persona file %s: %w", path, err)
		}
		var p Persona
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("parse persona file %s: %w", path, err)
		}
		if strings.TrimSpace(p.Name) == "" {
			p.Name = strings.TrimSuffix(entry.Name(), ".json")
		}
		reg.personas[p.Name] = p
	}
	return reg, nil
}

// Get returns the persona registered under name.
func (r *Registry) Get(name string) (Persona, error) {
	p, ok := r.personas[name]
	if !ok {
		return Persona{}, fmt.Errorf("unknown persona %q", name)
	}
	return p, nil
}

// Names lists the registered persona keys in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.personas))
	for name := range r.personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
