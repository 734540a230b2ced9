// Package openai implements responder.Responder on the OpenAI Chat
// Completions API. Pointing BaseURL at any OpenAI-compatible endpoint (for
// example Mistral's) works unchanged.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/responder"
)

// Options configure the OpenAI responder. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
	BaseURL     string
}

// Responder wraps the OpenAI Chat Completions API behind the generic
// responder.Responder interface.
type Responder struct {
	client *openai.Client
	opts   Options
}

// New creates a Responder using the official client.
func New(optFns ...func(o *Options)) *Responder {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
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
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	return &Responder{client: &client, opts: opts}
}

// NewFromClient creates a Responder from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Responder {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
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

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               r.opts.Model,
		Messages:            messages,
		Temperature:         openai.Float(r.opts.Temperature),
		MaxCompletionTokens: openai.Int(r.opts.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", responder.ErrUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages converts session history into OpenAI chat messages, prefixed
// with the fixed system preamble.
func buildMessages(history []core.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(responder.SystemPreamble))
	for _, msg := range history {
		if msg.Role == core.RoleBot {
			messages = append(messages, openai.AssistantMessage(msg.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(msg.Content))
	}
	return messages
}
