package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Gemini defaults.
const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"
)

type gemini struct {
	hc      *http.Client
	baseURL string
	model   string
	apiKey  string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func newGemini(cfg Config, hc *http.Client) *gemini {
	g := &gemini{hc: hc, baseURL: cfg.BaseURL, model: cfg.Model, apiKey: cfg.APIKey}
	if g.baseURL == "" {
		g.baseURL = DefaultGeminiBaseURL
	}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	g.baseURL = strings.TrimRight(g.baseURL, "/")
	return g
}

// Generate calls models/{model}:generateContent. The key travels in a
// header so it never shows up in URL-bearing errors.
func (g *gemini) Generate(ctx context.Context, prompt string) (string, error) {
	url := g.baseURL + "/v1beta/models/" + g.model + ":generateContent"
	req := geminiRequest{Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}}

	data, err := postJSON(ctx, g.hc, ProviderGemini, url, map[string]string{"x-goog-api-key": g.apiKey}, req)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &ServiceError{Provider: ProviderGemini, Message: "decode response", Err: err}
	}
	if len(resp.Candidates) == 0 {
		msg := "empty response"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			msg = "prompt blocked: " + resp.PromptFeedback.BlockReason
		}
		return "", &ServiceError{Provider: ProviderGemini, Message: msg}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", &ServiceError{Provider: ProviderGemini, Message: "empty response (" + resp.Candidates[0].FinishReason + ")"}
	}
	return b.String(), nil
}
