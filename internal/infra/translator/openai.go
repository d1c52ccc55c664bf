package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"newsportal/internal/resilience/circuitbreaker"
	"newsportal/pkg/config"
)

// OpenAIConfig holds configuration parameters for the OpenAI translator.
// Configuration is loaded from environment variables with fallback to defaults.
type OpenAIConfig struct {
	// Model is the OpenAI API model identifier used for translation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single translation API call.
	Timeout time.Duration
}

// LoadOpenAIConfig loads the OpenAI translator configuration from environment
// variables.
//
// Environment variables:
//   - TRANSLATOR_OPENAI_MODEL: Model identifier (default: gpt-4o-mini)
//   - TRANSLATOR_MAX_TOKENS: Response token cap (default: 2048)
//   - TRANSLATOR_TIMEOUT: Per-call timeout (default: 30s)
func LoadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:     config.GetEnvString("TRANSLATOR_OPENAI_MODEL", "gpt-4o-mini"),
		MaxTokens: config.GetEnvInt("TRANSLATOR_MAX_TOKENS", 2048),
		Timeout:   config.GetEnvDuration("TRANSLATOR_TIMEOUT", 30*time.Second),
	}
}

// OpenAI implements the Translator interface using OpenAI's chat completion API.
// Calls go through a circuit breaker so a failing provider degrades fast
// instead of stalling every request. Failures are not retried.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         OpenAIConfig
	metrics        MetricsRecorder
}

// NewOpenAI creates a new OpenAI translator with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	cfg := LoadOpenAIConfig()

	slog.Info("initialized openai translator",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		config:         cfg,
		metrics:        NewPrometheusMetrics(),
	}
}

// Translate implements the Translator interface.
func (o *OpenAI) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if IsBlank(text) {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doTranslate(ctx, text, sourceLanguage, targetLanguage)
	})
	duration := time.Since(start)

	if err != nil {
		o.metrics.RecordTranslation("openai", "failure", duration)
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("%w: openai: circuit breaker open", ErrTranslationUnavailable)
		}
		return "", unavailable("openai", err)
	}

	o.metrics.RecordTranslation("openai", "success", duration)
	return result.(string), nil
}

// doTranslate performs the actual API call without circuit breaker handling.
func (o *OpenAI) doTranslate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(text, sourceLanguage, targetLanguage),
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "translation failed",
			slog.String("provider", "openai"),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "openai api returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("openai api returned empty translation")
	}

	slog.InfoContext(ctx, "translation completed",
		slog.String("provider", "openai"),
		slog.String("source", sourceLanguage),
		slog.String("target", targetLanguage),
		slog.Int("input_length", len([]rune(text))),
		slog.Duration("duration", duration))

	return translated, nil
}
