package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2  string // ISO 639-1
	locale xlanguage.Tag
}

var languages = []entry{
	{"en", xlanguage.AmericanEnglish},
	{"ru", xlanguage.MustParse("ru-RU")},
}

// fallback is used for any code other than English.
var fallback = languages[1]

func lookup(code string) (entry, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, e := range languages {
		if e.code2 == code {
			return e, true
		}
	}
	return entry{}, false
}

// Supported reports whether code is one of the run languages.
func Supported(code string) bool {
	_, ok := lookup(code)
	return ok
}

// Codes lists the supported ISO 639-1 codes.
func Codes() []string {
	out := make([]string, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.code2)
	}
	return out
}

// Locale maps a run language to the recognition locale: "en" becomes en-US,
// anything else ru-RU.
func Locale(code string) xlanguage.Tag {
	if strings.ToLower(strings.TrimSpace(code)) == "en" {
		return languages[0].locale
	}
	return fallback.locale
}

// ISO2 returns the two-letter base language of a locale tag.
func ISO2(tag xlanguage.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// DisplayName returns the English name of a run language, e.g. "Russian".
// Unknown input yields the uppercased code.
func DisplayName(code string) string {
	e, ok := lookup(code)
	if !ok {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			return "Unknown"
		}
		return strings.ToUpper(trimmed)
	}
	base, _ := e.locale.Base()
	name := display.English.Languages().Name(base)
	return cases.Title(xlanguage.English).String(name)
}
