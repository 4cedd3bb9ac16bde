package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/segment"
)

func TestNormalizer_Abbreviations(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		code lang.Code
		in   string
		want string
	}{
		{name: "Should keep exceptions", code: lang.English, in: "NASA launched it", want: "NASA launched it"},
		{name: "Should expand known acronyms", code: lang.Ukrainian, in: "СБУ затримала", want: "Служба Безпеки України затримала"},
		{name: "Should spell Latin acronyms in English", code: lang.English, in: "the FBI said", want: "the ef bee eye said"},
		{name: "Should spell Latin acronyms with the fragment language table", code: lang.German, in: "die BMW", want: "die be em we"},
		{name: "Should spell Cyrillic acronyms with Ukrainian names", code: lang.Ukrainian, in: "США", want: "ес ша а"},
		{name: "Should spell Cyrillic acronyms with Russian names", code: lang.Russian, in: "ФСБ", want: "эф эс бэ"},
		{name: "Should use Ukrainian names for Cyrillic acronyms in Latin fragments", code: lang.English, in: "ЗСУ", want: "зе ес у"},
		{name: "Should use English names for Latin acronyms in Cyrillic fragments", code: lang.Ukrainian, in: "про USA", want: "про you ess ay"},
		{name: "Should ignore single capitals", code: lang.English, in: "I am A", want: "I am A"},
		{name: "Should ignore mixed-case words", code: lang.English, in: "iPhone NaSA", want: "iPhone NaSA"},
		{name: "Should ignore words glued to digits", code: lang.English, in: "MP3 file", want: "MP3 file"},
		{name: "Should ignore mixed-script words", code: lang.English, in: "ABВГ", want: "ABВГ"},
		{name: "Should keep punctuation around acronyms", code: lang.English, in: "(UN), EU.", want: "(you en), ee you."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Abbreviations(tt.in, tt.code))
		})
	}

	t.Run("Should honour extra exceptions and expansions", func(t *testing.T) {
		custom := New(WithExceptions("IBM"), WithExpansions(map[string]string{"ЄС": "Європейський Союз"}))
		assert.Equal(t, "IBM", custom.Abbreviations("IBM", lang.English))
		assert.Equal(t, "Європейський Союз", custom.Abbreviations("ЄС", lang.Ukrainian))
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		code lang.Code
		in   string
		want string
	}{
		{name: "Should read English decimal percent", code: lang.English, in: "14.5%", want: "fourteen point five percent"},
		{name: "Should read Ukrainian decimal percent", code: lang.Ukrainian, in: "14.5%", want: "чотирнадцять кома п'ять відсотків"},
		{name: "Should read comma decimals digit by digit", code: lang.Ukrainian, in: "3,25", want: "три кома два п'ять"},
		{name: "Should read integer percent", code: lang.English, in: "45%", want: "forty-five percent"},
		{name: "Should read integers in context", code: lang.Ukrainian, in: "запустила 2 ракети.", want: "запустила два ракети."},
		{name: "Should read Russian integers", code: lang.Russian, in: "21", want: "двадцать один"},
		{name: "Should rewrite 24/7 in Ukrainian", code: lang.Ukrainian, in: "працює 24/7", want: "працює двадцять чотири на сім"},
		{name: "Should rewrite 24/7 in English", code: lang.English, in: "open 24/7", want: "open twenty-four on seven"},
		{name: "Should leave dates for the date pass", code: lang.Ukrainian, in: "2024-03-01", want: "2024-03-01"},
		{name: "Should leave dotted dates for the date pass", code: lang.English, in: "on 01.03.2024 at 5", want: "on 01.03.2024 at five"},
		{
			name: "Should spell out-of-range numbers digit by digit",
			code: lang.English,
			in:   "12345678901234567890",
			want: "one two three four five six seven eight nine zero one two three four five six seven eight nine zero",
		},
		{name: "Should fall back to English tables for unknown languages", code: "pl", in: "7", want: "seven"},
		{name: "Should read digit runs that end in a date shape", code: lang.English, in: "12024-03-01", want: "twelve thousand twenty-four-three-one"},
		{name: "Should keep numerals glued to letters", code: lang.English, in: "MP3 file, 5km and 3rd", want: "MP3 file, 5km and 3rd"},
		{name: "Should keep numerals glued to Cyrillic letters", code: lang.Ukrainian, in: "Су-27 та 2024р", want: "Су-двадцять сім та 2024р"},
		{name: "Should not eat sentence periods", code: lang.English, in: "I have 2.", want: "I have two."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Numbers(tt.in, tt.code))
		})
	}
}

func TestDates(t *testing.T) {
	tests := []struct {
		name string
		code lang.Code
		in   string
		want string
	}{
		{name: "Should render Ukrainian ISO dates", code: lang.Ukrainian, in: "2024-03-01", want: "1 березня 2024 року"},
		{name: "Should render Russian dotted dates", code: lang.Russian, in: "25.12.2023", want: "25 декабря 2023 года"},
		{name: "Should render English slashed dates", code: lang.English, in: "04/07/2021", want: "4 July 2021"},
		{name: "Should render German dates", code: lang.German, in: "2020-05-09", want: "9 Mai 2020"},
		{name: "Should leave impossible dates", code: lang.Ukrainian, in: "2024-13-45", want: "2024-13-45"},
		{name: "Should leave date shapes preceded by digits", code: lang.English, in: "in 12024-03-01 ok", want: "in 12024-03-01 ok"},
		{name: "Should leave date shapes followed by digits", code: lang.English, in: "01.02.20245", want: "01.02.20245"},
		{name: "Should render dates next to punctuation", code: lang.English, in: "(2024-03-01).", want: "(1 March 2024)."},
		{name: "Should leave text without dates", code: lang.English, in: "no dates here", want: "no dates here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dates(tt.in, tt.code))
		})
	}

	t.Run("Should try layouts in order", func(t *testing.T) {
		d, err := ParseDate("01/02/2024")
		require.NoError(t, err)
		assert.Equal(t, time.February, d.Month())
		assert.Equal(t, 1, d.Day())

		_, err = ParseDate("31/02/2024")
		assert.ErrorIs(t, err, ErrBadDate)
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	n := New()

	t.Run("Should run all passes with the fragment language", func(t *testing.T) {
		got := n.Normalize(segment.Fragment{
			Lang: lang.Ukrainian,
			Text: "СБУ: 2024-03-01 затримано 3 особи, це 14.5% від ДСНС.",
		})
		assert.Equal(t, lang.Ukrainian, got.Lang)
		assert.Equal(t,
			"Служба Безпеки України: 1 березня 2024 року затримано три особи, це чотирнадцять кома п'ять відсотків від Державна служба з надзвичайних ситуацій.",
			got.Text)
	})

	t.Run("Should keep failing matches and continue", func(t *testing.T) {
		got := n.Normalize(segment.Fragment{Lang: lang.English, Text: "Dates 2024-02-30 and 2024-02-29 are 2 dates."})
		assert.Equal(t, "Dates 2024-02-30 and 29 February 2024 are two dates.", got.Text)
	})
}

func TestLetterNames(t *testing.T) {
	t.Run("Should cover the whole Latin alphabet for every Latin locale", func(t *testing.T) {
		for code, table := range latinLetterNames {
			for r := 'A'; r <= 'Z'; r++ {
				assert.NotEmpty(t, table[r], "%s missing %c", code, r)
			}
		}
	})

	t.Run("Should fall back by script", func(t *testing.T) {
		assert.Equal(t, "ay", LetterNames(lang.Russian, false)['A'])
		assert.Equal(t, "бе", LetterNames(lang.English, true)['Б'])
		assert.Equal(t, "бэ", LetterNames(lang.Russian, true)['Б'])
	})
}

func TestLocales(t *testing.T) {
	for code, loc := range locales {
		t.Run(string(code), func(t *testing.T) {
			assert.Equal(t, code, loc.Code)
			assert.NotEmpty(t, loc.Point)
			assert.NotEmpty(t, loc.Percent)
			assert.NotEmpty(t, loc.Around)
			for i, m := range loc.Months {
				assert.NotEmpty(t, m, "month %d", i+1)
			}
			require.NotNil(t, loc.Cardinal)
		})
	}
}
