package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	infraerrors "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/errors"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient calls the Chat Completions API.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient builds a client from cfg using httpClient for transport.
func NewOpenAIClient(cfg Config, httpClient *http.Client) *OpenAIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.temperature(),
		maxTokens:   cfg.MaxTokens,
		httpClient:  httpClient,
	}
}

// Name implements Client.
func (c *OpenAIClient) Name() string { return ProviderOpenAI }

// Generate implements Client.
func (c *OpenAIClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	payload, err := json.Marshal(openAIRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", WrapError(ProviderOpenAI, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", WrapError(ProviderOpenAI, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", WrapError(ProviderOpenAI, fmt.Errorf("send request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return "", statusError(ProviderOpenAI, resp.StatusCode, httpErr)
	}

	var body openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", WrapError(ProviderOpenAI, fmt.Errorf("decode response: %w", err))
	}
	if len(body.Choices) == 0 || strings.TrimSpace(body.Choices[0].Message.Content) == "" {
		return "", &EmptyResponseError{Provider: ProviderOpenAI}
	}
	return body.Choices[0].Message.Content, nil
}
