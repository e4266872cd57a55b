package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-flash-lite-latest"

// Gemini calls Google Gemini through the genai SDK.
type Gemini struct {
	gClient *genai.Client
	opts    GenerationOptions
}

// NewGemini creates a Gemini client. An API key is required.
func NewGemini(ctx context.Context, apiKey string, opts GenerationOptions) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or llm.gemini.api_key in config file")
	}
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{gClient: gClient, opts: opts}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Complete generates text for a single-turn prompt.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var config *genai.GenerateContentConfig
	if g.opts.MaxTokens > 0 || g.opts.Temperature > 0 {
		config = &genai.GenerateContentConfig{}
		if g.opts.MaxTokens > 0 {
			config.MaxOutputTokens = int32(g.opts.MaxTokens)
		}
		if g.opts.Temperature > 0 {
			temp := g.opts.Temperature
			config.Temperature = &temp
		}
	}

	resp, err := g.gClient.Models.GenerateContent(ctx, g.opts.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
