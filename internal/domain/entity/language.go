package entity

import "strings"

// Supported UI and content languages. The application is strictly bilingual:
// every news item is authored in one of these and derived into the other.
const (
	LanguageRussian = "ru"
	LanguageEnglish = "en"
)

// DefaultLanguage is used when a request carries no recognizable language.
const DefaultLanguage = LanguageRussian

// NormalizeLanguage trims and lowercases a language code.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsSupportedLanguage reports whether the (already normalized) code is one of
// the supported languages.
func IsSupportedLanguage(code string) bool {
	return code == LanguageRussian || code == LanguageEnglish
}

// PairLanguage returns the complementary language for the given source
// language: "ru" maps to "en", anything else maps to "ru". The mapping is a
// fixed two-way rule; supporting a third language would require replacing it
// with a per-item target-language set.
func PairLanguage(code string) string {
	if code == LanguageRussian {
		return LanguageEnglish
	}
	return LanguageRussian
}
