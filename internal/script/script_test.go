package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want Class
	}{
		{'a', Latin},
		{'Z', Latin},
		{'é', Latin},
		{'ß', Latin},
		{'ж', Cyrillic},
		{'Ї', Cyrillic},
		{'ё', Cyrillic},
		{'7', Digit},
		{'.', Punctuation},
		{'%', Punctuation},
		{'+', Punctuation},
		{'«', Punctuation},
		{' ', Whitespace},
		{'\n', Whitespace},
		{' ', Whitespace},
		{'世', Other},
		{'λ', Other},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.r))
		})
	}
}

func TestClassifyString(t *testing.T) {
	t.Run("Should pick the majority script", func(t *testing.T) {
		assert.Equal(t, Cyrillic, ClassifyString("Вчора "))
		assert.Equal(t, Latin, ClassifyString("NASA"))
		assert.Equal(t, Cyrillic, ClassifyString("запустила iOS додаток"))
	})

	t.Run("Should return Other without letters", func(t *testing.T) {
		assert.Equal(t, Other, ClassifyString("12, 13!"))
		assert.Equal(t, Other, ClassifyString(""))
	})
}

func TestCyrillicHintOf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Hint
	}{
		{name: "Should detect Ukrainian i", in: "Київ", want: HintUkrainian},
		{name: "Should detect upper-case Ukrainian letters", in: "ЄВРОПА", want: HintUkrainian},
		{name: "Should detect Russian letters", in: "съезд", want: HintRussian},
		{name: "Should detect Russian e", in: "Это", want: HintRussian},
		{name: "Should prefer Ukrainian when both occur", in: "ыі", want: HintUkrainian},
		{name: "Should report shared letters as ambiguous", in: "вчора", want: HintAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CyrillicHintOf(tt.in))
		})
	}
}

func TestHasLetterAndUpper(t *testing.T) {
	assert.True(t, HasLetter("2 ракети"))
	assert.False(t, HasLetter(" 2, 3. "))
	assert.True(t, IsUpperWord("NASA"))
	assert.True(t, IsUpperWord("СБУ"))
	assert.False(t, IsUpperWord("NaSA"))
	assert.False(t, IsUpperWord(""))
}
