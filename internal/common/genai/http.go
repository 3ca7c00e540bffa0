package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-assistant/internal/common/http"
	"food-assistant/internal/common/logger"
)

const generatePath = "/api/ai/generate"

// HTTPGenerator posts prompts to a generic text-generation endpoint.
type HTTPGenerator struct {
	client      *http.Client
	url         string
	apiKey      string
	timeout     time.Duration
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

func NewHTTPGenerator(cfg Config, log logger.Logger) (*HTTPGenerator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrGenAIDisabled
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGenerator{
		client:      http.NewClient(timeout, cfg.MaxRetries),
		url:         strings.TrimRight(cfg.BaseURL, "/") + generatePath,
		apiKey:      cfg.APIKey,
		timeout:     timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      log.With(map[string]interface{}{"provider": ProviderHTTP}),
	}, nil
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  g.maxTokens,
		"temperature": g.temperature,
	}
	var headers map[string]string
	if g.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + g.apiKey}
	}

	var resp generateResponse
	if err := g.client.PostJSON(ctx, g.url, headers, requestBody, &resp); err != nil {
		if errors.Is(err, http.ErrRequestTimeout) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrGenAITimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenAIFailed, err)
	}

	g.logger.Debug("generation completed", map[string]interface{}{"chars": len(resp.Text)})
	return resp.Text, nil
}
