// Package script classifies runes by writing system.
//
// Classification is pure and total: every code point maps to exactly one
// Class. Only Latin and Cyrillic are distinguished as letter scripts; letters
// of any other script are Other.
package script

import "unicode"

// Class is the coarse script family of a rune.
type Class int

const (
	Other Class = iota
	Cyrillic
	Latin
	Digit
	Punctuation
	Whitespace
)

var classNames = [...]string{
	Other:       "other",
	Cyrillic:    "cyrillic",
	Latin:       "latin",
	Digit:       "digit",
	Punctuation: "punctuation",
	Whitespace:  "whitespace",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// IsLetter reports whether c is one of the supported letter scripts.
func (c Class) IsLetter() bool {
	return c == Cyrillic || c == Latin
}

// Classify returns the Class of r.
func Classify(r rune) Class {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.IsDigit(r):
		return Digit
	case unicode.Is(unicode.Cyrillic, r) && unicode.IsLetter(r):
		return Cyrillic
	case unicode.Is(unicode.Latin, r):
		return Latin
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Punctuation
	default:
		return Other
	}
}

// ClassifyString returns the letter script with the most runes in s, or
// Other when s has no Latin or Cyrillic letters. Ties go to Cyrillic.
func ClassifyString(s string) Class {
	var cyr, lat int
	for _, r := range s {
		switch Classify(r) {
		case Cyrillic:
			cyr++
		case Latin:
			lat++
		}
	}
	switch {
	case cyr == 0 && lat == 0:
		return Other
	case cyr >= lat:
		return Cyrillic
	default:
		return Latin
	}
}

// HasLetter reports whether s contains at least one Latin or Cyrillic letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if Classify(r).IsLetter() {
			return true
		}
	}
	return false
}

// IsUpperWord reports whether every rune of s is an upper-case letter.
func IsUpperWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
