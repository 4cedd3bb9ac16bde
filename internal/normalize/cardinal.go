package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned for numbers the cardinal spellers cannot read.
var ErrOutOfRange = errors.New("number out of range")

// maxCardinal is the largest number every speller handles (just under 10^15).
const maxCardinal int64 = 999_999_999_999_999

func checkRange(n int64) error {
	if n < 0 || n > maxCardinal {
		return fmt.Errorf("%d: %w", n, ErrOutOfRange)
	}
	return nil
}

// groups splits n into base-1000 groups, least significant first.
func groups(n int64) []int {
	if n == 0 {
		return []int{0}
	}
	var out []int
	for n > 0 {
		out = append(out, int(n%1000))
		n /= 1000
	}
	return out
}

// --- English ---

var (
	enOnes = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	enTens   = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	enScales = [...]string{"", "thousand", "million", "billion", "trillion"}
)

func englishCardinal(n int64) (string, error) {
	if err := checkRange(n); err != nil {
		return "", err
	}
	if n == 0 {
		return enOnes[0], nil
	}
	gs := groups(n)
	var parts []string
	for i := len(gs) - 1; i >= 0; i-- {
		if gs[i] == 0 {
			continue
		}
		parts = append(parts, englishBelowThousand(gs[i]))
		if enScales[i] != "" {
			parts = append(parts, enScales[i])
		}
	}
	return strings.Join(parts, " "), nil
}

func englishBelowThousand(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, enOnes[h], "hundred")
	}
	switch r := n % 100; {
	case r == 0:
	case r < 20:
		parts = append(parts, enOnes[r])
	case r%10 == 0:
		parts = append(parts, enTens[r/10])
	default:
		parts = append(parts, enTens[r/10]+"-"+enOnes[r%10])
	}
	return strings.Join(parts, " ")
}

// --- Ukrainian and Russian ---

// slavicWords spells numbers in East Slavic languages, where the word for a
// scale agrees in number with its multiplier and thousands are feminine.
type slavicWords struct {
	ones         [20]string
	onesFeminine [3]string // 0, 1, 2 for feminine nouns
	tens         [10]string
	hundreds     [10]string
	// scales[i] holds the one/few/many forms of 1000^i, i >= 1.
	scales [5][3]string
}

var ukrainianWords = &slavicWords{
	ones: [20]string{"нуль", "один", "два", "три", "чотири", "п'ять", "шість", "сім", "вісім", "дев'ять",
		"десять", "одинадцять", "дванадцять", "тринадцять", "чотирнадцять", "п'ятнадцять", "шістнадцять",
		"сімнадцять", "вісімнадцять", "дев'ятнадцять"},
	onesFeminine: [3]string{"", "одна", "дві"},
	tens:         [10]string{"", "", "двадцять", "тридцять", "сорок", "п'ятдесят", "шістдесят", "сімдесят", "вісімдесят", "дев'яносто"},
	hundreds:     [10]string{"", "сто", "двісті", "триста", "чотириста", "п'ятсот", "шістсот", "сімсот", "вісімсот", "дев'ятсот"},
	scales: [5][3]string{
		{},
		{"тисяча", "тисячі", "тисяч"},
		{"мільйон", "мільйони", "мільйонів"},
		{"мільярд", "мільярди", "мільярдів"},
		{"трильйон", "трильйони", "трильйонів"},
	},
}

var russianWords = &slavicWords{
	ones: [20]string{"ноль", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять",
		"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать",
		"семнадцать", "восемнадцать", "девятнадцать"},
	onesFeminine: [3]string{"", "одна", "две"},
	tens:         [10]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"},
	hundreds:     [10]string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"},
	scales: [5][3]string{
		{},
		{"тысяча", "тысячи", "тысяч"},
		{"миллион", "миллиона", "миллионов"},
		{"миллиард", "миллиарда", "миллиардов"},
		{"триллион", "триллиона", "триллионов"},
	},
}

// pluralForm picks the one (0), few (1) or many (2) form for n.
func pluralForm(n int) int {
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return 2
	case n%10 == 1:
		return 0
	case n%10 >= 2 && n%10 <= 4:
		return 1
	default:
		return 2
	}
}

func (w *slavicWords) cardinal(n int64) (string, error) {
	if err := checkRange(n); err != nil {
		return "", err
	}
	if n == 0 {
		return w.ones[0], nil
	}
	gs := groups(n)
	var parts []string
	for i := len(gs) - 1; i >= 0; i-- {
		g := gs[i]
		if g == 0 {
			continue
		}
		parts = append(parts, w.belowThousand(g, i == 1)...)
		if i > 0 {
			parts = append(parts, w.scales[i][pluralForm(g)])
		}
	}
	return strings.Join(parts, " "), nil
}

func (w *slavicWords) belowThousand(n int, feminine bool) []string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, w.hundreds[h])
	}
	r := n % 100
	if r >= 20 {
		parts = append(parts, w.tens[r/10])
		r %= 10
	}
	if r > 0 {
		if feminine && r <= 2 {
			parts = append(parts, w.onesFeminine[r])
		} else {
			parts = append(parts, w.ones[r])
		}
	}
	return parts
}

// --- French ---

var (
	frOnes = [...]string{"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
		"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	frTens = [...]string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante", "quatre-vingt", "quatre-vingt"}
)

func frenchCardinal(n int64) (string, error) {
	if err := checkRange(n); err != nil {
		return "", err
	}
	if n == 0 {
		return frOnes[0], nil
	}
	scales := [...][2]string{{}, {"mille", "mille"}, {"million", "millions"}, {"milliard", "milliards"}, {"billion", "billions"}}
	gs := groups(n)
	var parts []string
	for i := len(gs) - 1; i >= 0; i-- {
		g := gs[i]
		if g == 0 {
			continue
		}
		switch {
		case i == 1 && g == 1:
			parts = append(parts, "mille")
			continue
		case i == 1:
			// "cents" and "quatre-vingts" lose their s before "mille".
			parts = append(parts, frenchBelowThousand(g, false), "mille")
			continue
		}
		parts = append(parts, frenchBelowThousand(g, true))
		if i > 1 {
			form := scales[i][0]
			if g > 1 {
				form = scales[i][1]
			}
			parts = append(parts, form)
		}
	}
	return strings.Join(parts, " "), nil
}

func frenchBelowThousand(n int, final bool) string {
	var parts []string
	h, r := n/100, n%100
	switch {
	case h == 1:
		parts = append(parts, "cent")
	case h > 1 && r == 0 && final:
		parts = append(parts, frOnes[h], "cents")
	case h > 1:
		parts = append(parts, frOnes[h], "cent")
	}
	if r > 0 {
		parts = append(parts, frenchBelowHundred(r, final))
	}
	return strings.Join(parts, " ")
}

func frenchBelowHundred(n int, final bool) string {
	if n < 20 {
		return frOnes[n]
	}
	t, u := n/10, n%10
	// 70-79 and 90-99 count on from 60 and 80.
	if t == 7 || t == 9 {
		u += 10
	}
	base := frTens[t]
	switch {
	case u == 0 && t == 8 && final:
		return "quatre-vingts"
	case u == 0:
		return base
	case (u == 1 || u == 11) && t != 8 && t != 9:
		return base + " et " + frOnes[u]
	default:
		return base + "-" + frOnes[u]
	}
}

// --- German ---

var (
	deOnes = [...]string{"null", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun",
		"zehn", "elf", "zwölf", "dreizehn", "vierzehn", "fünfzehn", "sechzehn", "siebzehn", "achtzehn", "neunzehn"}
	deTens = [...]string{"", "", "zwanzig", "dreißig", "vierzig", "fünfzig", "sechzig", "siebzig", "achtzig", "neunzig"}
)

func germanCardinal(n int64) (string, error) {
	if err := checkRange(n); err != nil {
		return "", err
	}
	if n == 0 {
		return deOnes[0], nil
	}
	scales := [...][2]string{{}, {}, {"Million", "Millionen"}, {"Milliarde", "Milliarden"}, {"Billion", "Billionen"}}
	gs := groups(n)
	var parts []string
	for i := len(gs) - 1; i >= 2; i-- {
		g := gs[i]
		if g == 0 {
			continue
		}
		if g == 1 {
			parts = append(parts, "eine", scales[i][0])
			continue
		}
		parts = append(parts, germanBelowThousand(g, false), scales[i][1])
	}

	// Everything below a million is written as one word.
	var word string
	if len(gs) > 1 && gs[1] > 0 {
		word = germanBelowThousand(gs[1], false) + "tausend"
	}
	if gs[0] > 0 {
		word += germanBelowThousand(gs[0], true)
	}
	if word != "" {
		parts = append(parts, word)
	}
	return strings.Join(parts, " "), nil
}

// germanBelowThousand spells 1..999; final selects "eins" over "ein" for a
// trailing one.
func germanBelowThousand(n int, final bool) string {
	var sb strings.Builder
	if h := n / 100; h > 0 {
		sb.WriteString(germanUnit(h, false))
		sb.WriteString("hundert")
	}
	r := n % 100
	switch {
	case r == 0:
	case r < 20:
		sb.WriteString(germanUnit(r, final))
	case r%10 == 0:
		sb.WriteString(deTens[r/10])
	default:
		sb.WriteString(germanUnit(r%10, false))
		sb.WriteString("und")
		sb.WriteString(deTens[r/10])
	}
	return sb.String()
}

func germanUnit(n int, final bool) string {
	if n == 1 && !final {
		return "ein"
	}
	return deOnes[n]
}

// --- Spanish ---

var (
	esOnes = [...]string{"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
		"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
		"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco", "veintiséis",
		"veintisiete", "veintiocho", "veintinueve"}
	esTens     = [...]string{"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}
	esHundreds = [...]string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
		"seiscientos", "setecientos", "ochocientos", "novecientos"}
)

func spanishCardinal(n int64) (string, error) {
	if err := checkRange(n); err != nil {
		return "", err
	}
	if n == 0 {
		return esOnes[0], nil
	}
	billions := n / 1_000_000_000_000
	millions := (n / 1_000_000) % 1_000_000
	rest := int(n % 1_000_000)

	var parts []string
	if billions > 0 {
		if billions == 1 {
			parts = append(parts, "un billón")
		} else {
			parts = append(parts, spanishBelowMillion(int(billions), true), "billones")
		}
	}
	if millions > 0 {
		if millions == 1 {
			parts = append(parts, "un millón")
		} else {
			parts = append(parts, spanishBelowMillion(int(millions), true), "millones")
		}
	}
	if rest > 0 {
		parts = append(parts, spanishBelowMillion(rest, false))
	}
	return strings.Join(parts, " "), nil
}

// spanishBelowMillion spells 1..999999. apocope shortens a trailing "uno"
// to "un" before a masculine noun ("veintiún millones").
func spanishBelowMillion(n int, apocope bool) string {
	var parts []string
	if th := n / 1000; th > 0 {
		if th > 1 {
			parts = append(parts, spanishBelowThousand(th, true))
		}
		parts = append(parts, "mil")
	}
	if r := n % 1000; r > 0 {
		parts = append(parts, spanishBelowThousand(r, apocope))
	}
	return strings.Join(parts, " ")
}

func spanishBelowThousand(n int, apocope bool) string {
	if n == 100 {
		return "cien"
	}
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, esHundreds[h])
	}
	r := n % 100
	var tail string
	switch {
	case r == 0:
	case r < 30:
		tail = esOnes[r]
	case r%10 == 0:
		tail = esTens[r/10]
	default:
		tail = esTens[r/10] + " y " + esOnes[r%10]
	}
	if apocope {
		switch {
		case tail == "veintiuno":
			tail = "veintiún"
		case strings.HasSuffix(tail, "uno"):
			tail = strings.TrimSuffix(tail, "uno") + "un"
		}
	}
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, " ")
}
