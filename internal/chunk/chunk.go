// Package chunk cuts normalized text into sentence-aligned pieces that fit a
// synthesizer's input limit.
package chunk

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/segment"
)

// DefaultMaxLength is the chunk length limit in characters.
const DefaultMaxLength = 1000

// Chunk is a slice of one fragment's normalized text.
type Chunk struct {
	Lang lang.Code `json:"lang"`
	Text string    `json:"text"`

	// Fragment is the index of the source fragment in the run.
	Fragment int `json:"fragment"`
	// Index is the position of the chunk within its fragment.
	Index int `json:"index"`
}

// Len returns the chunk length in characters.
func (c Chunk) Len() int { return utf8.RuneCountInString(c.Text) }

// Split groups the sentences of text into chunks of at most max characters.
// Sentences are never cut: one longer than max becomes a chunk of its own.
// A non-positive max disables the limit. The sequence is restartable.
func Split(text string, code lang.Code, max int) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		index := 0
		emit := func(s string) bool {
			s = strings.TrimSpace(s)
			if s == "" {
				return true
			}
			ok := yield(Chunk{Lang: code, Text: s, Index: index})
			index++
			return ok
		}

		var buf strings.Builder
		bufLen := 0
		for sentence := range segment.Sentences(text) {
			n := utf8.RuneCountInString(sentence)
			if max <= 0 || bufLen+n+1 <= max {
				if bufLen > 0 {
					buf.WriteByte(' ')
					bufLen++
				}
				buf.WriteString(sentence)
				bufLen += n
				continue
			}

			if bufLen > 0 && !emit(buf.String()) {
				return
			}
			buf.Reset()
			bufLen = 0

			if n > max {
				if !emit(sentence) {
					return
				}
				continue
			}
			buf.WriteString(sentence)
			bufLen = n
		}
		if bufLen > 0 {
			emit(buf.String())
		}
	}
}
