// Package segment splits text into sentences, sentences into language-tagged
// tokens, and merges tokens into per-language fragments.
package segment

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// isTerminal reports whether r ends a sentence when followed by whitespace.
func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Sentences yields the sentences of text. A sentence ends right after a
// '.', '!' or '?' that is followed by whitespace; that whitespace is consumed.
// Abbreviations are not special-cased, so "Mr. Smith" yields two sentences.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		var prev rune
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) && isTerminal(prev) {
				if !yield(text[start:i]) {
					return
				}
				j := i
				for j < len(text) {
					nr, ns := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(nr) {
						break
					}
					j += ns
				}
				start, i, prev = j, j, 0
				continue
			}
			prev = r
			i += size
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}
