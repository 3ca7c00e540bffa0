// Package fallback answers messages no chat rule claimed, first through a
// generative-text service and then with a fixed sentence.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"food-assistant/internal/common/boundary"
	"food-assistant/internal/common/genai"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/common/metrics"
	"food-assistant/internal/models"
)

const (
	// FixedReply is returned whenever the generator is absent or fails.
	FixedReply = "I can help with food orders, delivery, menu, or app support."

	maxMessageRunes = 500
)

// Context is what the responder knows about the turn besides the message.
type Context struct {
	HasCatalog bool
	Restaurant string
	Region     string
}

type Responder struct {
	generator genai.Generator
	logger    logger.Logger
}

// NewResponder accepts a nil generator; every reply is then FixedReply.
func NewResponder(generator genai.Generator, log logger.Logger) *Responder {
	return &Responder{
		generator: generator,
		logger:    log.WithFields(map[string]interface{}{"component": "fallback"}),
	}
}

// Respond never fails.
func (r *Responder) Respond(ctx context.Context, message string, c Context) models.Reply {
	if r.generator == nil {
		return fixed()
	}

	prompt := BuildPrompt(message, c)
	out := boundary.Call(ctx, "genai", func(ctx context.Context) (string, error) {
		return r.generator.Generate(ctx, prompt)
	})
	if out.Failed() {
		metrics.ChatCollaboratorFailures.WithLabelValues("genai").Inc()
		r.logger.Warn("generative reply failed", map[string]interface{}{"error": out.Err.Error()})
		return fixed()
	}

	text := strings.TrimSpace(out.Value)
	if text == "" {
		r.logger.Warn("generative reply was empty", nil)
		return fixed()
	}
	return models.Reply{Reply: text, Source: models.SourceGenerative}
}

func fixed() models.Reply {
	return models.Reply{Reply: FixedReply, Source: models.SourceFallback}
}

// BuildPrompt embeds the (truncated) message, the catalog flag and the
// assistant's scope rules.
func BuildPrompt(message string, c Context) string {
	restaurant := c.Restaurant
	if restaurant == "" {
		restaurant = "our restaurant"
	}
	region := c.Region
	if region == "" {
		region = "our service area"
	}
	menuStatus := "not available right now"
	if c.HasCatalog {
		menuStatus = "available"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("You are a polite food ordering assistant for %s, delivering across %s.", restaurant, region))
	parts = append(parts, "\nRules:")
	parts = append(parts, "- Only answer questions about the menu, delivery, or orders.")
	parts = append(parts, "- Never invent menu items, prices, or deals. Refer the user to the menu instead.")
	parts = append(parts, "- Do not take orders in chat. Ask the user to order through the app's menu and cart.")
	parts = append(parts, fmt.Sprintf("- If the question is out of scope, reply: %q", FixedReply))
	parts = append(parts, "- Keep the answer under three short sentences.")
	parts = append(parts, fmt.Sprintf("\nMenu catalog: %s", menuStatus))
	parts = append(parts, fmt.Sprintf("User message: %q", truncate(message, maxMessageRunes)))
	parts = append(parts, "\nAnswer:")
	return strings.Join(parts, "\n")
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
