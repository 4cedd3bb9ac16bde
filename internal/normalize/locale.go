package normalize

import (
	"github.com/nadzzz/voxsplit/internal/lang"
)

// Locale holds the words the number and date passes need for one language.
type Locale struct {
	Code lang.Code

	// Point is spoken between the whole and fractional parts of a decimal.
	Point string
	// Percent is appended to numbers followed by '%'.
	Percent string
	// Around joins the two halves of "24/7".
	Around string

	// Months are month names as used inside a date, January first.
	Months [12]string
	// DateSuffix follows the year ("року", "года"); may be empty.
	DateSuffix string

	// Cardinal spells a non-negative integer.
	Cardinal func(n int64) (string, error)
}

var locales = map[lang.Code]*Locale{
	lang.English: {
		Code:    lang.English,
		Point:   "point",
		Percent: "percent",
		Around:  "on",
		Months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		Cardinal: englishCardinal,
	},
	lang.Ukrainian: {
		Code:    lang.Ukrainian,
		Point:   "кома",
		Percent: "відсотків",
		Around:  "на",
		Months: [12]string{"січня", "лютого", "березня", "квітня", "травня", "червня",
			"липня", "серпня", "вересня", "жовтня", "листопада", "грудня"},
		DateSuffix: "року",
		Cardinal:   ukrainianWords.cardinal,
	},
	lang.Russian: {
		Code:    lang.Russian,
		Point:   "запятая",
		Percent: "процентов",
		Around:  "на",
		Months: [12]string{"января", "февраля", "марта", "апреля", "мая", "июня",
			"июля", "августа", "сентября", "октября", "ноября", "декабря"},
		DateSuffix: "года",
		Cardinal:   russianWords.cardinal,
	},
	lang.French: {
		Code:    lang.French,
		Point:   "virgule",
		Percent: "pour cent",
		Around:  "sur",
		Months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		Cardinal: frenchCardinal,
	},
	lang.German: {
		Code:    lang.German,
		Point:   "Komma",
		Percent: "Prozent",
		Around:  "an",
		Months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
		Cardinal: germanCardinal,
	},
	lang.Spanish: {
		Code:    lang.Spanish,
		Point:   "coma",
		Percent: "por ciento",
		Around:  "por",
		Months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		Cardinal: spanishCardinal,
	},
}

// LocaleFor returns the locale for code, falling back to English.
func LocaleFor(code lang.Code) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales[lang.English]
}

// Letter names for spelling acronyms, by script and language.
var latinLetterNames = map[lang.Code]map[rune]string{
	lang.English: {
		'A': "ay", 'B': "bee", 'C': "cee", 'D': "dee", 'E': "ee", 'F': "ef", 'G': "gee", 'H': "aitch",
		'I': "eye", 'J': "jay", 'K': "kay", 'L': "el", 'M': "em", 'N': "en", 'O': "oh", 'P': "pee",
		'Q': "cue", 'R': "ar", 'S': "ess", 'T': "tee", 'U': "you", 'V': "vee", 'W': "double-you",
		'X': "ex", 'Y': "why", 'Z': "zee",
	},
	lang.French: {
		'A': "a", 'B': "be", 'C': "ce", 'D': "de", 'E': "e", 'F': "effe", 'G': "ge", 'H': "ache",
		'I': "i", 'J': "ji", 'K': "ka", 'L': "elle", 'M': "emme", 'N': "enne", 'O': "o", 'P': "pe",
		'Q': "ku", 'R': "erre", 'S': "esse", 'T': "te", 'U': "u", 'V': "ve", 'W': "double ve",
		'X': "ix", 'Y': "i grec", 'Z': "zede",
	},
	lang.German: {
		'A': "a", 'B': "be", 'C': "ce", 'D': "de", 'E': "e", 'F': "ef", 'G': "ge", 'H': "ha",
		'I': "i", 'J': "jot", 'K': "ka", 'L': "el", 'M': "em", 'N': "en", 'O': "o", 'P': "pe",
		'Q': "ku", 'R': "er", 'S': "es", 'T': "te", 'U': "u", 'V': "vau", 'W': "we", 'X': "iks",
		'Y': "ypsilon", 'Z': "zet",
	},
	lang.Spanish: {
		'A': "a", 'B': "be", 'C': "ce", 'D': "de", 'E': "e", 'F': "efe", 'G': "ge", 'H': "hache",
		'I': "i", 'J': "jota", 'K': "ka", 'L': "ele", 'M': "eme", 'N': "ene", 'O': "o", 'P': "pe",
		'Q': "cu", 'R': "erre", 'S': "ese", 'T': "te", 'U': "u", 'V': "uve", 'W': "uve doble",
		'X': "equis", 'Y': "i griega", 'Z': "zeta",
	},
}

var cyrillicLetterNames = map[lang.Code]map[rune]string{
	lang.Ukrainian: {
		'А': "а", 'Б': "бе", 'В': "ве", 'Г': "ге", 'Ґ': "ґе", 'Д': "де", 'Е': "е", 'Є': "є", 'Ж': "же",
		'З': "зе", 'И': "и", 'І': "і", 'Ї': "ї", 'Й': "й", 'К': "ка", 'Л': "ел", 'М': "ем", 'Н': "ен",
		'О': "о", 'П': "пе", 'Р': "ер", 'С': "ес", 'Т': "те", 'У': "у", 'Ф': "еф", 'Х': "ха", 'Ц': "це",
		'Ч': "че", 'Ш': "ша", 'Щ': "ща", 'Ь': "м'який знак", 'Ю': "ю", 'Я': "я",
	},
	lang.Russian: {
		'А': "а", 'Б': "бэ", 'В': "вэ", 'Г': "гэ", 'Д': "дэ", 'Е': "е", 'Ё': "ё", 'Ж': "же", 'З': "зэ",
		'И': "и", 'Й': "й", 'К': "ка", 'Л': "эл", 'М': "эм", 'Н': "эн", 'О': "о", 'П': "пэ", 'Р': "эр",
		'С': "эс", 'Т': "тэ", 'У': "у", 'Ф': "эф", 'Х': "ха", 'Ц': "цэ", 'Ч': "че", 'Ш': "ша", 'Щ': "ща",
		'Ъ': "твёрдый знак", 'Ы': "ы", 'Ь': "мягкий знак", 'Э': "э", 'Ю': "ю", 'Я': "я",
	},
}

// LetterNames returns the table used to spell an acronym of the given script
// inside a fragment of the given language.
func LetterNames(code lang.Code, cyrillic bool) map[rune]string {
	if cyrillic {
		if t, ok := cyrillicLetterNames[code]; ok {
			return t
		}
		return cyrillicLetterNames[lang.Ukrainian]
	}
	if t, ok := latinLetterNames[code]; ok {
		return t
	}
	return latinLetterNames[lang.English]
}

// DefaultExceptions are acronyms read as words and never spelled out.
var DefaultExceptions = []string{
	"NASA", "NATO", "UNESCO", "UNICEF", "OPEC", "LASER", "RADAR", "SCUBA", "FIFA", "OECD",
	"ДТЕК", "ЮНІСЕФ", "НАТО", "САП", "ГУР", "SECRET", "BOX", "KAIRO", "VIRAT", "ЦЕНЗУРИ",
}

// DefaultExpansions are acronyms replaced by their full form.
var DefaultExpansions = map[string]string{
	"СБУ":  "Служба Безпеки України",
	"ДСНС": "Державна служба з надзвичайних ситуацій",
}
