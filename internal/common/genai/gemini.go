package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"food-assistant/internal/common/logger"
)

// GeminiGenerator calls Google Gemini through langchaingo.
type GeminiGenerator struct {
	llm         llms.Model
	timeout     time.Duration
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg Config, log logger.Logger) (*GeminiGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrGenAIDisabled
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenAIFailed, err)
	}
	return newGeminiWithModel(llm, cfg, log.With(map[string]interface{}{"provider": ProviderGemini, "model": model})), nil
}

func newGeminiWithModel(llm llms.Model, cfg Config, log logger.Logger) *GeminiGenerator {
	return &GeminiGenerator{
		llm:         llm,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      log,
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := []llms.CallOption{llms.WithTemperature(g.temperature)}
	if g.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(g.maxTokens))
	}

	start := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, opts...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrGenAITimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenAIFailed, err)
	}

	g.logger.Debug("gemini completion", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
		"chars":      len(text),
	})
	return text, nil
}
