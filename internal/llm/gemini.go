package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API through the Google Gen AI SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiClient builds a Gemini API client. It does not contact the API.
func NewGeminiClient(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.temperature()),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Name implements Client.
func (c *GeminiClient) Name() string { return ProviderGemini }

// Generate implements Client. Replies are requested as application/json.
func (c *GeminiClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", statusError(ProviderGemini, apiErr.Code, err)
		}
		return "", WrapError(ProviderGemini, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResponseError{Provider: ProviderGemini}
	}
	return text, nil
}
