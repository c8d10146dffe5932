// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// chatService is the narrow slice of the OpenAI SDK this package uses, so
// tests can supply a mock instead of a live client.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// sdkChat binds chatService to the real SDK client.
type sdkChat struct {
	client openai.Client
}

func (s sdkChat) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return s.client.Chat.Completions.New(ctx, params)
}

// openaiClient calls the OpenAI Chat Completions API through the official SDK.
type openaiClient struct {
	chat      chatService
	model     string
	maxTokens int
}

func newOpenAI(cfg types.ProviderConfig) *openaiClient {
	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cli := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &openaiClient{
		chat:      sdkChat{client: cli},
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *openaiClient) Name() string { return "openai" }

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *openaiClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", classify("openai", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &types.MalformedOutputError{Raw: "", Err: errOpenAIEmpty}
	}
	return resp.Choices[0].Message.Content, nil
}

var errOpenAIEmpty = errors.New("openai API returned no choices")
