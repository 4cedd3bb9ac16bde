package lang

import (
	"github.com/pemistahl/lingua-go"
)

// linguaLanguages maps codes to lingua models. Besides the built-in locales it
// includes close neighbours so that unsupported guesses stay possible.
var linguaLanguages = map[Code]lingua.Language{
	English:   lingua.English,
	Ukrainian: lingua.Ukrainian,
	Russian:   lingua.Russian,
	French:    lingua.French,
	German:    lingua.German,
	Spanish:   lingua.Spanish,
	"be":      lingua.Belarusian,
	"bg":      lingua.Bulgarian,
	"pl":      lingua.Polish,
	"it":      lingua.Italian,
	"pt":      lingua.Portuguese,
}

// neighbours are always loaded alongside the supported set.
var neighbours = []Code{"be", "bg", "pl", "it", "pt"}

// LinguaIdentifier identifies languages with the lingua n-gram models.
type LinguaIdentifier struct {
	detector lingua.LanguageDetector
	codes    map[lingua.Language]Code
}

// NewLinguaIdentifier builds an identifier over the given codes plus the
// neighbouring languages. Codes without a lingua model are ignored.
func NewLinguaIdentifier(codes ...Code) *LinguaIdentifier {
	byLanguage := make(map[lingua.Language]Code, len(codes)+len(neighbours))
	var languages []lingua.Language
	for _, c := range append(append([]Code{}, codes...), neighbours...) {
		l, ok := linguaLanguages[c]
		if !ok {
			continue
		}
		if _, dup := byLanguage[l]; dup {
			continue
		}
		byLanguage[l] = c
		languages = append(languages, l)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &LinguaIdentifier{detector: detector, codes: byLanguage}
}

// Identify implements Identifier.
func (l *LinguaIdentifier) Identify(text string) (Code, error) {
	language, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}
	code, ok := l.codes[language]
	if !ok {
		return "", ErrUndetermined
	}
	return code, nil
}
