package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"newsportal/internal/resilience/circuitbreaker"
	"newsportal/pkg/config"
)

// ClaudeConfig holds configuration parameters for the Claude translator.
type ClaudeConfig struct {
	// Model is the Claude API model identifier used for translation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single translation API call.
	Timeout time.Duration
}

// LoadClaudeConfig loads the Claude translator configuration from environment
// variables.
//
// Environment variables:
//   - TRANSLATOR_CLAUDE_MODEL: Model identifier (default: current Sonnet)
//   - TRANSLATOR_MAX_TOKENS: Response token cap (default: 2048)
//   - TRANSLATOR_TIMEOUT: Per-call timeout (default: 30s)
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:     config.GetEnvString("TRANSLATOR_CLAUDE_MODEL", string(anthropic.ModelClaudeSonnet4_5_20250929)),
		MaxTokens: config.GetEnvInt("TRANSLATOR_MAX_TOKENS", 2048),
		Timeout:   config.GetEnvDuration("TRANSLATOR_TIMEOUT", 30*time.Second),
	}
}

// Claude implements the Translator interface using Anthropic's Claude API.
// Calls go through a circuit breaker; failures are not retried.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ClaudeConfig
	metrics        MetricsRecorder
}

// NewClaude creates a new Claude translator with the given API key.
func NewClaude(apiKey string) *Claude {
	cfg := LoadClaudeConfig()

	slog.Info("initialized claude translator",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		config:         cfg,
		metrics:        NewPrometheusMetrics(),
	}
}

// Translate implements the Translator interface.
func (c *Claude) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if IsBlank(text) {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doTranslate(ctx, text, sourceLanguage, targetLanguage)
	})
	duration := time.Since(start)

	if err != nil {
		c.metrics.RecordTranslation("claude", "failure", duration)
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("%w: claude: circuit breaker open", ErrTranslationUnavailable)
		}
		return "", unavailable("claude", err)
	}

	c.metrics.RecordTranslation("claude", "success", duration)
	return result.(string), nil
}

// doTranslate performs the actual API call without circuit breaker handling.
func (c *Claude) doTranslate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(text, sourceLanguage, targetLanguage)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "translation failed",
			slog.String("provider", "claude"),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "claude api returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	translated := strings.TrimSpace(message.Content[0].Text)
	if translated == "" {
		return "", fmt.Errorf("claude api returned empty translation")
	}

	slog.InfoContext(ctx, "translation completed",
		slog.String("provider", "claude"),
		slog.String("source", sourceLanguage),
		slog.String("target", targetLanguage),
		slog.Int("input_length", len([]rune(text))),
		slog.Duration("duration", duration))

	return translated, nil
}
