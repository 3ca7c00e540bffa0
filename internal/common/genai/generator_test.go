package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-assistant/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeModel struct {
	reply  string
	err    error
	delay  time.Duration
	prompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if tp, ok := p.(llms.TextContent); ok {
				f.prompt = tp.Text
			}
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func createTestConfig(baseURL string) Config {
	return Config{
		Provider:    ProviderHTTP,
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		MaxRetries:  1,
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// ==========================
// Provider Selection Tests
// ==========================

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	log := logger.NewTestLogger(t)

	_, err := New(context.Background(), Config{Provider: ProviderGemini}, log)
	assert.ErrorIs(t, err, ErrGenAIDisabled)

	_, err = New(context.Background(), Config{}, log)
	assert.ErrorIs(t, err, ErrGenAIDisabled)

	_, err = New(context.Background(), Config{Provider: ProviderHTTP}, log)
	assert.ErrorIs(t, err, ErrGenAIDisabled)

	_, err = New(context.Background(), Config{Provider: "openai"}, log)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGenAIDisabled)
}

// ==========================
// Gemini Tests
// ==========================

func TestGeminiGenerator_Generate(t *testing.T) {
	model := &fakeModel{reply: "  We deliver across Lahore.  "}
	g := newGeminiWithModel(model, Config{Timeout: time.Second}, logger.NewTestLogger(t))

	text, err := g.Generate(context.Background(), "where do you deliver?")
	require.NoError(t, err)
	assert.Equal(t, "  We deliver across Lahore.  ", text)
	assert.Equal(t, "where do you deliver?", model.prompt)
}

func TestGeminiGenerator_Errors(t *testing.T) {
	g := newGeminiWithModel(&fakeModel{err: errors.New("quota exceeded")}, Config{}, logger.NewNoOpLogger())
	_, err := g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGenAIFailed)

	slow := newGeminiWithModel(&fakeModel{delay: time.Second, reply: "late"}, Config{Timeout: 20 * time.Millisecond}, logger.NewNoOpLogger())
	_, err = slow.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGenAITimeout)
}

// ==========================
// HTTP Tests
// ==========================

func TestHTTPGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello there", body["prompt"])
		assert.Equal(t, float64(256), body["max_tokens"])
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "Hi! Ask me about the menu."})
	}))
	defer srv.Close()

	g, err := NewHTTPGenerator(createTestConfig(srv.URL+"/"), logger.NewTestLogger(t))
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Hi! Ask me about the menu.", text)
}

func TestHTTPGenerator_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g, err := NewHTTPGenerator(createTestConfig(srv.URL), logger.NewNoOpLogger())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGenAIFailed)
}

func TestHTTPGenerator_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := createTestConfig(srv.URL)
	cfg.Timeout = 30 * time.Millisecond
	g, err := NewHTTPGenerator(cfg, logger.NewNoOpLogger())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGenAITimeout)
}
