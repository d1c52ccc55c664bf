// Package translator provides machine-translation implementations backed by
// AI chat-completion APIs. It includes adapters for OpenAI and Claude
// (Anthropic) with circuit breaker protection, plus a NoOp implementation for
// development and tests.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTranslationUnavailable is returned for every provider failure: network
// errors, malformed or empty responses, rate limiting, and an open circuit
// breaker. Callers cannot distinguish the causes and are not expected to;
// no retry is performed at this layer.
var ErrTranslationUnavailable = errors.New("translation unavailable")

// Translator converts text between the supported languages.
type Translator interface {
	// Translate returns the text translated from sourceLanguage into
	// targetLanguage. Empty or whitespace-only text is returned unchanged
	// without any external call.
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// IsBlank reports whether text is empty or whitespace-only. Such input
// short-circuits translation.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// unavailable wraps a provider failure into ErrTranslationUnavailable.
func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %s", ErrTranslationUnavailable, provider, err)
}

// languageName maps a two-letter code to the language name used in prompts.
func languageName(code string) string {
	switch code {
	case "ru":
		return "Russian"
	case "en":
		return "English"
	default:
		return code
	}
}

// buildPrompt constructs the translation prompt for the chat-completion APIs.
// The instruction pins the output to the bare translation so the response can
// be stored verbatim.
func buildPrompt(text, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf(
		"Translate the following text from %s to %s. Reply with only the translated text, no quotes and no commentary:\n%s",
		languageName(sourceLanguage), languageName(targetLanguage), text)
}
