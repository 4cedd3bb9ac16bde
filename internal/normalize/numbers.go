package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/nadzzz/voxsplit/internal/lang"
)

var (
	aroundPattern = regexp.MustCompile(`\b24/7\b`)
	numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?%?`)
)

// Numbers spells out "24/7", integers, decimals and percentages. Numerals
// that form a calendar date are left for the date pass; numerals glued to
// letters ("MP3", "5km") are part of a word and stay as written.
func Numbers(text string, code lang.Code) string {
	loc := LocaleFor(code)

	text = aroundPattern.ReplaceAllStringFunc(text, func(m string) string {
		spoken, err := spellAround(loc)
		if err != nil {
			logFallback("numbers", m, code, err)
			return m
		}
		return spoken
	})

	dates := dateSpans(text)
	matches := numberPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		if overlapsAny(m, dates) || touches(text, m, unicode.IsLetter) {
			continue
		}
		numeral := text[m[0]:m[1]]
		spoken, err := SpellNumber(numeral, loc)
		if err != nil {
			logFallback("numbers", numeral, code, err)
			spoken = spellDigitsOrKeep(numeral, loc)
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(spoken)
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func overlapsAny(span []int, others [][]int) bool {
	for _, o := range others {
		if span[0] < o[1] && o[0] < span[1] {
			return true
		}
	}
	return false
}

func spellAround(loc *Locale) (string, error) {
	first, err := loc.Cardinal(24)
	if err != nil {
		return "", err
	}
	second, err := loc.Cardinal(7)
	if err != nil {
		return "", err
	}
	return first + " " + loc.Around + " " + second, nil
}

// SpellNumber spells a numeral such as "42", "14.5", "3,25" or "14.5%".
// Fractional digits are read one at a time.
func SpellNumber(numeral string, loc *Locale) (string, error) {
	body, percent := strings.CutSuffix(numeral, "%")

	var spoken string
	if i := strings.IndexAny(body, ".,"); i >= 0 {
		whole, err := spellInteger(body[:i], loc)
		if err != nil {
			return "", err
		}
		frac, err := spellDigits(body[i+1:], loc)
		if err != nil {
			return "", err
		}
		spoken = whole + " " + loc.Point + " " + frac
	} else {
		whole, err := spellInteger(body, loc)
		if err != nil {
			return "", err
		}
		spoken = whole
	}

	if percent {
		spoken += " " + loc.Percent
	}
	return spoken, nil
}

func spellInteger(digits string, loc *Locale) (string, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", digits, err)
	}
	return loc.Cardinal(n)
}

// spellDigits reads each digit of s separately.
func spellDigits(s string, loc *Locale) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no digits to spell")
	}
	words := make([]string, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("not a digit: %q", r)
		}
		w, err := loc.Cardinal(int64(r - '0'))
		if err != nil {
			return "", err
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), nil
}

// spellDigitsOrKeep is the fallback for numerals that cannot be read as a
// whole: every digit is spoken on its own, separators become the locale's
// words, and the numeral is kept verbatim if even that fails.
func spellDigitsOrKeep(numeral string, loc *Locale) string {
	var words []string
	for _, r := range numeral {
		switch r {
		case '.', ',':
			words = append(words, loc.Point)
		case '%':
			words = append(words, loc.Percent)
		default:
			w, err := spellDigits(string(r), loc)
			if err != nil {
				return numeral
			}
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}
