// Package normalize rewrites a fragment's text into a form a speech
// synthesizer reads correctly: acronyms are spelled or expanded, numbers and
// percentages become words, and calendar dates become prose.
//
// The three passes run in a fixed order (abbreviations, numbers, dates) and
// pick locale tables only from the fragment's own language. A failure while
// rewriting one match leaves that match untouched and never affects the rest
// of the text.
package normalize

import (
	"log/slog"
	"strings"

	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/segment"
)

// Normalized is a fragment after normalization. Lang is the source fragment's.
type Normalized struct {
	Lang lang.Code `json:"lang"`
	Text string    `json:"text"`
}

// Normalizer applies the abbreviation, number and date passes.
type Normalizer struct {
	exceptions map[string]struct{}
	expansions map[string]string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithExceptions adds acronyms that must be left as written. Keys are
// upper-cased, since config loaders may fold them to lower case.
func WithExceptions(words ...string) Option {
	return func(n *Normalizer) {
		for _, w := range words {
			n.exceptions[strings.ToUpper(w)] = struct{}{}
		}
	}
}

// WithExpansions adds acronym → full form replacements.
func WithExpansions(m map[string]string) Option {
	return func(n *Normalizer) {
		for k, v := range m {
			n.expansions[strings.ToUpper(k)] = v
		}
	}
}

// New creates a Normalizer with the default exception and expansion tables.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		exceptions: make(map[string]struct{}, len(DefaultExceptions)),
		expansions: make(map[string]string, len(DefaultExpansions)),
	}
	WithExceptions(DefaultExceptions...)(n)
	WithExpansions(DefaultExpansions)(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize rewrites f's text for speech.
func (n *Normalizer) Normalize(f segment.Fragment) Normalized {
	text := n.Abbreviations(f.Text, f.Lang)
	text = Numbers(text, f.Lang)
	text = Dates(text, f.Lang)
	return Normalized{Lang: f.Lang, Text: text}
}

// logFallback records a per-match failure that was recovered locally.
func logFallback(pass, match string, code lang.Code, err error) {
	slog.Debug("normalization fallback", "pass", pass, "match", match, "lang", code, "error", err)
}
