package entity

import (
	"errors"
	"fmt"
	"unicode"
)

// Field length limits for news translations.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 300
)

// Script-plausibility thresholds. A text field "mostly matches" a script when
// at least half of its letters belong to it; a field counts as mixed-script
// when both Cyrillic and Latin each exceed 30% of the letters.
const (
	dominantScriptShare = 0.5
	mixedScriptShare    = 0.3
)

// ValidateTranslation checks a translation against the field rules: supported
// language, required title and body, length limits, and script plausibility of
// each text field against the declared language. All violations are collected
// and returned joined, so a form can show every failing field at once.
// Returns nil when the translation is valid.
func ValidateTranslation(t *NewsTranslation) error {
	var errs []error

	if !IsSupportedLanguage(t.Language) {
		errs = append(errs, &ValidationError{Field: "language", Message: "must be \"ru\" or \"en\""})
	}

	switch {
	case t.Title == "":
		errs = append(errs, &ValidationError{Field: "title", Message: "is required"})
	case len([]rune(t.Title)) > MaxTitleLength:
		errs = append(errs, &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", MaxTitleLength),
		})
	}

	if len([]rune(t.Subtitle)) > MaxSubtitleLength {
		errs = append(errs, &ValidationError{
			Field:   "subtitle",
			Message: fmt.Sprintf("must not exceed %d characters", MaxSubtitleLength),
		})
	}

	if t.Body == "" {
		errs = append(errs, &ValidationError{Field: "body", Message: "is required"})
	}

	if IsSupportedLanguage(t.Language) {
		for _, f := range []struct{ name, text string }{
			{"title", t.Title},
			{"subtitle", t.Subtitle},
			{"body", t.Body},
		} {
			if f.text == "" {
				continue
			}
			if err := checkScript(f.name, f.text, t.Language); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// checkScript rejects a text field whose Cyrillic/Latin letter distribution
// does not fit the declared language. Fields without letters (digits,
// punctuation) are accepted: there is nothing to judge.
func checkScript(field, text, language string) error {
	cyrillic, latin, letters := countScripts(text)
	if letters == 0 {
		return nil
	}

	cyrShare := float64(cyrillic) / float64(letters)
	latShare := float64(latin) / float64(letters)

	if cyrShare > mixedScriptShare && latShare > mixedScriptShare {
		return &ValidationError{Field: field, Message: "mixed Cyrillic and Latin text is not allowed"}
	}

	switch language {
	case LanguageRussian:
		if cyrShare < dominantScriptShare {
			return &ValidationError{Field: field, Message: "text does not match the declared language \"ru\""}
		}
	case LanguageEnglish:
		if latShare < dominantScriptShare {
			return &ValidationError{Field: field, Message: "text does not match the declared language \"en\""}
		}
	}
	return nil
}

// countScripts counts Cyrillic letters, Latin letters, and letters overall.
func countScripts(text string) (cyrillic, latin, letters int) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	return cyrillic, latin, letters
}
