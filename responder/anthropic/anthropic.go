// Package anthropic implements responder.Responder on the Anthropic Messages
// API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/responder"
)

// Options configure the Anthropic responder (model id, max tokens, API key).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Responder wraps the Anthropic Messages API behind the generic
// responder.Responder interface.
type Responder struct {
	client *anthropic.Client
	opts   Options
}

// New creates a Responder using the official client.
func New(optFns ...func(o *Options)) *Responder {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Responder{client: &client, opts: opts}
}

// NewFromClient creates a Responder from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Responder {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Responder{client: client, opts: opts}
}

// Complete implements responder.Responder.
func (r *Responder) Complete(ctx context.Context, history []core.Message) (string, error) {
	messages := buildMessages(responder.TrimHistory(history))

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       r.opts.Model,
		MaxTokens:   r.opts.MaxTokens,
		Temperature: anthropic.Float(r.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: responder.SystemPreamble}},
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return "", responder.ErrUnavailable
	}
	return sb.String(), nil
}

// buildMessages converts session history into Anthropic message params.
func buildMessages(history []core.Message) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == core.RoleBot {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}
	return messages
}
