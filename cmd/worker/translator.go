package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"newsportal/internal/infra/translator"
	"newsportal/pkg/config"
)

// newTranslator selects the translation provider from TRANSLATOR_PROVIDER:
// openai (default), claude, or noop for development.
func newTranslator(logger *slog.Logger) (translator.Translator, error) {
	provider := config.GetEnvString("TRANSLATOR_PROVIDER", "openai")
	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY must be set for the openai translator")
		}
		return translator.NewOpenAI(apiKey), nil
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY must be set for the claude translator")
		}
		return translator.NewClaude(apiKey), nil
	case "noop":
		logger.Warn("using noop translator, derived translations will copy the source text")
		return translator.NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown TRANSLATOR_PROVIDER %q", provider)
	}
}
