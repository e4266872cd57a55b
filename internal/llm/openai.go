package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"cadence/internal/config"

	"github.com/sashabaranov/go-openai"
)

// OpenAI talks to any server that implements the OpenAI chat completions API,
// including llama.cpp's llama-server.
type OpenAI struct {
	client  *openai.Client
	baseURL string
	opts    GenerationOptions
}

// NewOpenAI creates a client for baseURL, which defaults to a local
// llama-server. Local servers usually ignore the API key.
func NewOpenAI(baseURL, apiKey string, opts GenerationOptions) *OpenAI {
	if apiKey == "" {
		apiKey = "no-key"
	}
	if baseURL == "" {
		baseURL = config.DefaultOpenAIBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	if opts.Model == "" {
		opts.Model = "local-model"
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		baseURL: cfg.BaseURL,
		opts:    opts,
	}
}

func (o *OpenAI) Name() string { return "openai" }

// BaseURL is the endpoint requests are sent to.
func (o *OpenAI) BaseURL() string { return o.baseURL }

// Complete sends prompt as a single user message and returns the first choice.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.opts.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   o.opts.MaxTokens,
			Temperature: o.opts.Temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
