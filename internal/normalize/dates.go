package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nadzzz/voxsplit/internal/lang"
)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}[./]\d{2}[./]\d{4}`)

// dateLayouts are tried in order until one parses.
var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

// ErrBadDate is returned when no layout accepts a date-shaped string.
var ErrBadDate = errors.New("not a valid date")

// ParseDate parses s with the YYYY-MM-DD, DD.MM.YYYY and DD/MM/YYYY layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, ErrBadDate)
}

// FormatDate renders t as "<day> <month> <year> <suffix>" for the locale.
func FormatDate(t time.Time, loc *Locale) string {
	parts := []string{
		strconv.Itoa(t.Day()),
		loc.Months[t.Month()-1],
		strconv.Itoa(t.Year()),
	}
	if loc.DateSuffix != "" {
		parts = append(parts, loc.DateSuffix)
	}
	return strings.Join(parts, " ")
}

// Dates rewrites calendar dates as prose. Strings that look like dates but do
// not parse (e.g. "2024-13-45") are left as written, and so are date-shaped
// tails of longer digit runs such as "12024-03-01".
func Dates(text string, code lang.Code) string {
	spans := dateSpans(text)
	if len(spans) == 0 {
		return text
	}
	loc := LocaleFor(code)

	var sb strings.Builder
	last := 0
	for _, m := range spans {
		date := text[m[0]:m[1]]
		t, err := ParseDate(date)
		if err != nil {
			logFallback("dates", date, code, err)
			continue
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(FormatDate(t, loc))
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// dateSpans returns the byte spans of date-shaped numerals that are not
// glued to further digits.
func dateSpans(text string) [][]int {
	var spans [][]int
	for _, m := range datePattern.FindAllStringIndex(text, -1) {
		if touches(text, m, isDigit) {
			continue
		}
		spans = append(spans, m)
	}
	return spans
}

// touches reports whether the rune right before or right after span
// satisfies pred.
func touches(text string, span []int, pred func(rune) bool) bool {
	if span[0] > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:span[0]]); pred(r) {
			return true
		}
	}
	if span[1] < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[span[1]:]); pred(r) {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
