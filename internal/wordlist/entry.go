package wordlist

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// variantSeparator joins accepted spellings on one text line
const variantSeparator = " OR "

// Entry is one word to spell
type Entry struct {
	// Display is spoken and shown as the target
	Display string `yaml:"word"`

	// Variants are the accepted spellings, lowercased
	Variants []string `yaml:"variants,omitempty"`
}

// NewEntry builds an entry whose display form is the first spelling
func NewEntry(spellings ...string) (Entry, bool) {
	var e Entry
	for _, s := range spellings {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if e.Display == "" {
			e.Display = s
		}
		e.addVariant(s)
	}
	return e, e.Display != ""
}

func (e *Entry) addVariant(s string) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return
	}
	for _, existing := range e.Variants {
		if existing == v {
			return
		}
	}
	e.Variants = append(e.Variants, v)
}

// Accepts reports whether typed matches one of the accepted spellings
func (e Entry) Accepts(typed string) bool {
	t := strings.ToLower(strings.TrimSpace(typed))
	if t == "" {
		return false
	}
	for _, v := range e.Variants {
		if v == t {
			return true
		}
	}
	return false
}

// String returns the entry in text list syntax
func (e Entry) String() string {
	if len(e.Variants) <= 1 {
		return e.Display
	}
	parts := []string{e.Display}
	for _, v := range e.Variants {
		if v != strings.ToLower(e.Display) {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, variantSeparator)
}

// ParseLine parses "word" or "wordA OR wordB". Blank lines and # comments
// yield ok=false.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}
	return NewEntry(strings.Split(line, variantSeparator)...)
}

// UnmarshalYAML accepts a scalar word or a {word, variants} mapping
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		entry, ok := ParseLine(s)
		if !ok {
			return fmt.Errorf("line %d: empty word", node.Line)
		}
		*e = entry
		return nil

	case yaml.MappingNode:
		var raw struct {
			Word     string   `yaml:"word"`
			Variants []string `yaml:"variants"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		entry, ok := NewEntry(append([]string{raw.Word}, raw.Variants...)...)
		if !ok || strings.TrimSpace(raw.Word) == "" {
			return fmt.Errorf("line %d: entry has no word", node.Line)
		}
		*e = entry
		return nil

	default:
		return fmt.Errorf("line %d: word must be a string or a mapping", node.Line)
	}
}
