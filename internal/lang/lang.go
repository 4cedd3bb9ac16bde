// Package lang defines the language codes voxsplit can tag text with and the
// dominant-language detector that seeds per-token language choice.
package lang

import (
	"fmt"
	"slices"
	"strings"
)

// Code is an ISO-639-1 language code (e.g., "en", "uk", "ru").
type Code string

// Codes with built-in locale tables.
const (
	English   Code = "en"
	Ukrainian Code = "uk"
	Russian   Code = "ru"
	French    Code = "fr"
	German    Code = "de"
	Spanish   Code = "es"
)

// DefaultSupported is the supported set used when nothing is configured.
var DefaultSupported = []Code{English, Ukrainian, Russian, French, German, Spanish}

// Builtin lists the codes the segmenter assigns without consulting the
// detector: English for short or upper-case Latin runs, Ukrainian and Russian
// for Cyrillic runs. Every supported set must contain them.
var Builtin = []Code{English, Ukrainian, Russian}

// aliases maps non-standard spellings seen in the wild to canonical codes.
var aliases = map[string]Code{
	"ua": Ukrainian,
}

// ParseCode normalizes a user-supplied code ("EN", " uk ", "ua") to a Code.
func ParseCode(s string) (Code, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty language code")
	}
	if c, ok := aliases[s]; ok {
		return c, nil
	}
	if len(s) != 2 {
		return "", fmt.Errorf("invalid language code %q", s)
	}
	return Code(s), nil
}

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// IsCyrillic reports whether the language is written in Cyrillic.
func (c Code) IsCyrillic() bool {
	return c == Ukrainian || c == Russian
}

// Set is an immutable set of supported language codes.
type Set struct {
	codes []Code
}

// NewSet builds a Set from codes, dropping duplicates while keeping order.
func NewSet(codes ...Code) Set {
	out := make([]Code, 0, len(codes))
	for _, c := range codes {
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return Set{codes: out}
}

// ParseSet parses a list of code strings into a Set.
func ParseSet(values []string) (Set, error) {
	codes := make([]Code, 0, len(values))
	for _, v := range values {
		c, err := ParseCode(v)
		if err != nil {
			return Set{}, err
		}
		codes = append(codes, c)
	}
	return NewSet(codes...), nil
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Code) bool {
	return slices.Contains(s.codes, c)
}

// Codes returns a copy of the codes in configuration order.
func (s Set) Codes() []Code {
	return slices.Clone(s.codes)
}

// Len returns the number of codes in the set.
func (s Set) Len() int { return len(s.codes) }
