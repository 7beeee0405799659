package adapter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	m "traduco.dev/pkg/traduco/internal/model"
)

// Glossary maps reference phrases to idiom hints shown alongside feedback.
// Lookups are case-insensitive on the phrase.
type Glossary struct {
	entries map[string]string
}

type glossaryFile struct {
	Entries []glossaryEntry `yaml:"entries"`
}

type glossaryEntry struct {
	Phrase string `yaml:"phrase"`
	Hint   string `yaml:"hint"`
}

// NewGlossary builds a glossary from phrase to hint pairs.
func NewGlossary(entries map[string]string) *Glossary {
	g := &Glossary{entries: make(map[string]string, len(entries))}
	for phrase, hint := range entries {
		g.entries[normalizePhrase(phrase)] = hint
	}

	return g
}

// LoadGlossary reads a YAML glossary file:
//
//	entries:
//	  - phrase: "it is raining cats and dogs"
//	    hint: "idiom: heavy rain, not literal animals"
func LoadGlossary(path string) (*Glossary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}

	var file glossaryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse glossary: %w", err)
	}

	entries := make(map[string]string, len(file.Entries))
	for _, e := range file.Entries {
		if strings.TrimSpace(e.Phrase) == "" {
			continue
		}

		entries[e.Phrase] = e.Hint
	}

	return NewGlossary(entries), nil
}

// Lookup returns the hint for a phrase, if any.
func (g *Glossary) Lookup(phrase string) (string, bool) {
	hint, ok := g.entries[normalizePhrase(phrase)]
	return hint, ok
}

// Annotate attaches hints to feedback items whose expected reference text
// matches a glossary phrase.
func (g *Glossary) Annotate(items []m.FeedbackItem) {
	for i, item := range items {
		if item.Kind != m.FeedbackReplaceWith && item.Kind != m.FeedbackMissingWords {
			continue
		}

		if hint, ok := g.Lookup(item.Reference); ok {
			items[i].Hint = hint
		}
	}
}

func normalizePhrase(phrase string) string {
	return strings.ToLower(strings.Join(strings.Fields(phrase), " "))
}
