package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	temperature          = 0.3
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIProvider calls an OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAIProvider creates a provider. An empty baseURL selects the public API.
func NewOpenAIProvider(client *resty.Client, apiKey, model, baseURL string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIProvider{
		client:  client,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI + ":" + p.model }

// Complete sends one system and one user message and returns the first choice.
func (p *OpenAIProvider) Complete(ctx context.Context, question string) (string, error) {
	var result chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model:       p.model,
			Temperature: temperature,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: question},
			},
		}).
		SetResult(&result).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai returned %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
