// internal/persona/builtin.go
package persona

// builtinPersonas returns the three stock debate characters.
func builtinPersonas() []Persona {
	return []Persona{
		{
			Name: "donald_trump",
			Profile: Profile{
				RhetoricalStyle: []string{
					"Frequent superlatives (best, greatest, tremendous)",
					"Third-person self-reference",
					"Hyperbolic assertions",
					"Repetitive phrasing for emphasis",
				},
				ArgumentPatterns: []string{
					"America First policy focus",
					"Criticism of opponents as 'weak' or 'foolish'",
					"Comparisons using 'we used to... now we...' structure",
				},
				SignaturePhrases: []string{
					"Make America Great Again",
					"Fake news",
					"Tremendous success",
				},
			},
			Style: StyleTransform{
				Replacements: map[string]string{
					"very":    "tremendously",
					"big":     "YUGE",
					"win":     "win bigly",
					"success": "success like never before",
				},
				SentenceEnders: []string{"Believe me!", "We're gonna win big!", "USA! USA!"},
				Openers:        []string{"Let me tell you,", "People are saying,", "Nobody knows this better than me:"},
			},
		},
		{
			Name: "jaishankar",
			Profile: Profile{
				RhetoricalStyle: []string{
					"Diplomatic but assertive tone",
					"Historical references",
					"Structural arguments (First... Second... Finally)",
					"Civilizational perspective",
				},
				ArgumentPatterns: []string{
					"Strategic autonomy emphasis",
					"Multipolar world order advocacy",
					"Cultural confidence in policy",
				},
				SignaturePhrases: []string{
					"Bharat's civilizational ethos",
					"Strategic calculus",
					"Contemporary global scenario",
				},
			},
			Style: StyleTransform{
				Replacements: map[string]string{
					"india":  "Bharat",
					"should": "must reflect our civilizational wisdom",
					"global": "multipolar world",
					"policy": "strategic roadmap",
				},
				SentenceEnders: []string{"That's our civilizational responsibility!", "This is the reality of geopolitics."},
				Openers:        []string{"In international relations,", "From our historical perspective,", "As a civilization-state,"},
			},
		},
		{
			Name: "narendra_modi",
			Profile: Profile{
				RhetoricalStyle: []string{
					"Aspirational narrative",
					"Alliterative phrases",
					"Cultural metaphors",
					"Mass connect emphasis",
				},
				ArgumentPatterns: []string{
					"Development-focused arguments",
					"Collective national effort emphasis",
					"Digital India references",
				},
				SignaturePhrases: []string{
					"Sabka Saath, Sabka Vikas",
					"New India",
					"Modi ki Guarantee",
				},
			},
			Style: StyleTransform{
				Replacements: map[string]string{
					"development": "Sabka Vikas",
					"progress":    "Digital India revolution",
					"work":        "Modi ki Guarantee",
					"people":      "140 crore Indians",
				},
				SentenceEnders: []string{"Jai Hind!", "This is New India's resolve!", "Bharat Mata Ki Jai!"},
				Openers:        []string{"With 140 crore countrymen,", "In this Amrit Kaal,", "As your Pradhan Sevak,"},
			},
		},
	}
}
