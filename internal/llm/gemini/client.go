// Package gemini implements the generation collaborator against Google's
// Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"constellation/internal/domain"
	"constellation/internal/llm"
)

// Client calls the Gemini API. One client is constructed at startup and
// shared; per-call model settings are built from the request.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini generator using an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Name() string { return "gemini" }

// Generate implements llm.Generator.
func (c *Client) Generate(ctx context.Context, req *llm.GenerateRequest) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	temp := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %v", domain.ErrUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", domain.ErrUnavailable)
	}

	return text, nil
}
