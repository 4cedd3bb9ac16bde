package script

import "unicode"

// Hint tells which Cyrillic alphabet a run can belong to.
type Hint int

const (
	// HintAmbiguous means only letters shared by both alphabets occur.
	HintAmbiguous Hint = iota
	// HintUkrainian means at least one Ukrainian-only letter occurs.
	HintUkrainian
	// HintRussian means a Russian-only letter occurs and no Ukrainian-only one.
	HintRussian
)

func (h Hint) String() string {
	switch h {
	case HintUkrainian:
		return "ukrainian"
	case HintRussian:
		return "russian"
	default:
		return "ambiguous"
	}
}

// Letters that exist in only one of the two alphabets, lower-case.
var (
	ukrainianOnly = []rune{'і', 'ї', 'є', 'ґ'}
	russianOnly   = []rune{'ё', 'ы', 'ъ', 'э'}
)

// UkrainianOnly reports whether r belongs to the Ukrainian but not the Russian alphabet.
func UkrainianOnly(r rune) bool {
	return containsRune(ukrainianOnly, unicode.ToLower(r))
}

// RussianOnly reports whether r belongs to the Russian but not the Ukrainian alphabet.
func RussianOnly(r rune) bool {
	return containsRune(russianOnly, unicode.ToLower(r))
}

// CyrillicHintOf inspects s for alphabet-distinguishing letters. Ukrainian
// letters take precedence when both kinds occur.
func CyrillicHintOf(s string) Hint {
	hint := HintAmbiguous
	for _, r := range s {
		if UkrainianOnly(r) {
			return HintUkrainian
		}
		if RussianOnly(r) {
			hint = HintRussian
		}
	}
	return hint
}

func containsRune(set []rune, r rune) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}
