package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// OpenAI-compatible defaults.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

type openAI struct {
	hc      *http.Client
	baseURL string
	model   string
	apiKey  string
}

type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string              `json:"model"`
	Messages []chatCompletionMsg `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatCompletionMsg `json:"message"`
		FinishReason string            `json:"finish_reason"`
	} `json:"choices"`
}

func newOpenAI(cfg Config, hc *http.Client) *openAI {
	o := &openAI{hc: hc, baseURL: cfg.BaseURL, model: cfg.Model, apiKey: cfg.APIKey}
	if o.baseURL == "" {
		o.baseURL = DefaultOpenAIBaseURL
	}
	if o.model == "" {
		o.model = DefaultOpenAIModel
	}
	o.baseURL = strings.TrimRight(o.baseURL, "/")
	return o
}

// Generate sends prompt as a single user message to /chat/completions.
func (o *openAI) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatCompletionRequest{
		Model:    o.model,
		Messages: []chatCompletionMsg{{Role: "user", Content: prompt}},
	}
	data, err := postJSON(ctx, o.hc, ProviderOpenAI, o.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + o.apiKey}, req)
	if err != nil {
		return "", err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &ServiceError{Provider: ProviderOpenAI, Message: "decode response", Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ServiceError{Provider: ProviderOpenAI, Message: "empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}
