package segment

import (
	"unicode/utf8"

	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/script"
)

// DefaultShortTokenLen is the rune length up to which a Latin run is tagged
// English without consulting the statistical detector.
const DefaultShortTokenLen = 10

// Token is a run of one script family tagged with a language. Whitespace
// following the run is already folded into Text.
type Token struct {
	Lang lang.Code `json:"lang"`
	Text string    `json:"text"`
}

// Segmenter splits a sentence into language-tagged tokens.
type Segmenter struct {
	detector      *lang.Detector
	shortTokenLen int
}

// NewSegmenter creates a Segmenter. detector may be nil, in which case long
// Latin runs are tagged English.
func NewSegmenter(detector *lang.Detector, shortTokenLen int) *Segmenter {
	if shortTokenLen <= 0 {
		shortTokenLen = DefaultShortTokenLen
	}
	return &Segmenter{detector: detector, shortTokenLen: shortTokenLen}
}

// Tokens partitions sentence into maximal single-family runs and tags each
// with a language. Whitespace is appended to the preceding token and dropped
// when nothing precedes it.
func (s *Segmenter) Tokens(sentence string, dominant lang.Code) []Token {
	var tokens []Token
	for _, r := range splitRuns(sentence) {
		if r.class == script.Whitespace {
			if n := len(tokens); n > 0 {
				tokens[n-1].Text += r.text
			}
			continue
		}
		tokens = append(tokens, Token{Lang: s.tag(r, dominant), Text: r.text})
	}
	return tokens
}

func (s *Segmenter) tag(r run, dominant lang.Code) lang.Code {
	switch r.class {
	case script.Cyrillic:
		switch script.CyrillicHintOf(r.text) {
		case script.HintUkrainian:
			return lang.Ukrainian
		case script.HintRussian:
			return lang.Russian
		}
		if dominant.IsCyrillic() {
			return dominant
		}
		return lang.Ukrainian
	case script.Latin:
		// Short words and acronyms are mostly names; the detector is
		// unreliable on them.
		if utf8.RuneCountInString(r.text) <= s.shortTokenLen || script.IsUpperWord(r.text) {
			return lang.English
		}
		if s.detector == nil {
			return lang.English
		}
		return s.detector.LatinRun(r.text)
	default:
		return dominant
	}
}

type run struct {
	class script.Class
	text  string
}

// isJoiner reports whether r may sit inside a word ("п'ять", "well-known").
func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', 'ʼ', '-':
		return true
	}
	return false
}

// splitRuns cuts s wherever the script family changes. A joiner between two
// letters of the same script stays inside that letter run.
func splitRuns(s string) []run {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	classes := make([]script.Class, len(runes))
	for i, r := range runes {
		classes[i] = script.Classify(r)
	}
	for i := 1; i < len(runes)-1; i++ {
		if isJoiner(runes[i]) && classes[i-1].IsLetter() && classes[i-1] == script.Classify(runes[i+1]) {
			classes[i] = classes[i-1]
		}
	}

	var out []run
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || classes[i] != classes[start] {
			out = append(out, run{class: classes[start], text: string(runes[start:i])})
			start = i
		}
	}
	return out
}
