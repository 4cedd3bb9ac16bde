package segment

import (
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/script"
)

// Fragment is a maximal run of one sentence's text spoken in one language.
type Fragment struct {
	Lang lang.Code `json:"lang"`
	Text string    `json:"text"`
}

// Merge joins adjacent tokens of the same language. Fragments with no Latin or
// Cyrillic letter are dropped, so a bare number between two languages is not
// spoken on its own.
func Merge(tokens []Token) []Fragment {
	var out []Fragment
	flush := func(f Fragment) {
		if script.HasLetter(f.Text) {
			out = append(out, f)
		}
	}

	var cur Fragment
	for i, t := range tokens {
		if i > 0 && t.Lang == cur.Lang {
			cur.Text += t.Text
			continue
		}
		if i > 0 {
			flush(cur)
		}
		cur = Fragment{Lang: t.Lang, Text: t.Text}
	}
	if len(tokens) > 0 {
		flush(cur)
	}
	return out
}
