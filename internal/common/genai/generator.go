// Package genai provides the generative-text collaborators used for
// free-form fallback replies.
package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-assistant/internal/common/logger"
)

var (
	ErrGenAIDisabled = errors.New("GENAI_DISABLED")
	ErrGenAITimeout  = errors.New("GENAI_TIMEOUT")
	ErrGenAIFailed   = errors.New("GENAI_FAILED")
)

const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"

	DefaultGeminiModel = "gemini-1.5-flash"
)

// Generator turns a prompt into text. Implementations bound their own latency.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// New builds the configured generator. It returns ErrGenAIDisabled when
// the provider lacks the credential or address it needs.
func New(ctx context.Context, cfg Config, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiGenerator(ctx, cfg, log)
	case ProviderHTTP:
		return NewHTTPGenerator(cfg, log)
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}
