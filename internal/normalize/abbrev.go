package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nadzzz/voxsplit/internal/lang"
)

// acronymScript reports whether word is an acronym: two or more upper-case
// letters of a single script (ASCII Latin or Cyrillic).
func acronymScript(word string) (cyrillic, ok bool) {
	if utf8.RuneCountInString(word) < 2 {
		return false, false
	}
	var lat, cyr int
	for _, r := range word {
		switch {
		case r >= 'A' && r <= 'Z':
			lat++
		case unicode.Is(unicode.Cyrillic, r) && unicode.IsUpper(r):
			cyr++
		default:
			return false, false
		}
	}
	if lat > 0 && cyr > 0 {
		return false, false
	}
	return cyr > 0, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Abbreviations rewrites every acronym in text. Exceptions stay as written,
// known acronyms expand to their full form, and the rest are spelled letter by
// letter. The letter-name table follows the acronym's own script and the
// fragment language code.
func (n *Normalizer) Abbreviations(text string, code lang.Code) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			sb.WriteRune(r)
			i += size
			continue
		}
		j := i
		for j < len(text) {
			wr, ws := utf8.DecodeRuneInString(text[j:])
			if !isWordRune(wr) {
				break
			}
			j += ws
		}
		sb.WriteString(n.acronym(text[i:j], code))
		i = j
	}
	return sb.String()
}

func (n *Normalizer) acronym(word string, code lang.Code) string {
	cyrillic, ok := acronymScript(word)
	if !ok {
		return word
	}
	if _, skip := n.exceptions[word]; skip {
		return word
	}
	if full, found := n.expansions[word]; found {
		return full
	}
	return SpellLetters(word, LetterNames(code, cyrillic))
}

// SpellLetters reads word letter by letter using names; letters missing from
// the table are kept as they are.
func SpellLetters(word string, names map[rune]string) string {
	spoken := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		if name, ok := names[r]; ok {
			spoken = append(spoken, name)
		} else {
			spoken = append(spoken, string(r))
		}
	}
	return strings.Join(spoken, " ")
}
