package drill

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/msto63/spellgym/internal/wordlist"
)

// Feedback describes how far a wrong answer was from the target
type Feedback struct {
	// Closest is the accepted spelling nearest to the answer
	Closest string

	// LettersOff is the Damerau-Levenshtein distance to Closest
	LettersOff int

	// Similarity is the Jaro-Winkler score against Closest
	Similarity float64

	// SoundsAlike is set when the Double Metaphone codes overlap
	SoundsAlike bool
}

// Analyze compares a wrong answer with the accepted spellings. It returns
// nil when nothing was typed or the entry has no spellings.
func Analyze(entry wordlist.Entry, typed string) *Feedback {
	t := strings.ToLower(strings.TrimSpace(typed))
	if t == "" || len(entry.Variants) == 0 {
		return nil
	}

	var best *Feedback
	for _, v := range entry.Variants {
		d := matchr.DamerauLevenshtein(t, v)
		if best != nil && d >= best.LettersOff {
			continue
		}
		best = &Feedback{
			Closest:    v,
			LettersOff: d,
			Similarity: matchr.JaroWinkler(t, v, false),
		}
	}

	best.SoundsAlike = codesOverlap(codes(t), codes(best.Closest))
	return best
}

// String renders the feedback as a short hint
func (f *Feedback) String() string {
	if f == nil {
		return ""
	}
	unit := "letters"
	if f.LettersOff == 1 {
		unit = "letter"
	}
	hint := fmt.Sprintf("%d %s off", f.LettersOff, unit)
	if f.Similarity > 0 {
		hint += fmt.Sprintf(" (%.0f%% similar)", f.Similarity*100)
	}
	if f.SoundsAlike {
		hint += ", sounds alike"
	}
	return hint
}

func codes(word string) map[string]struct{} {
	out := make(map[string]struct{}, 2)
	p, s := matchr.DoubleMetaphone(word)
	if p != "" {
		out[p] = struct{}{}
	}
	if s != "" {
		out[s] = struct{}{}
	}
	return out
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
