// Package llm talks to hosted language-model endpoints.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultTimeout bounds a single generation when the caller sets none.
const DefaultTimeout = 60 * time.Second

// Client produces a completion for a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a Client.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration

	// Limiter, when set, is waited on before every request. It is shared
	// by all clients built from the same Config so the quota holds across
	// credentials.
	Limiter *rate.Limiter

	// HTTPClient overrides the transport; its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

// New returns a Client for cfg. A missing API key is an *AuthError.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, &AuthError{Provider: cfg.Provider, Message: "missing API key"}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		c.Timeout = cfg.Timeout
		hc = &c
	}

	var c Client
	switch cfg.Provider {
	case "", ProviderGemini:
		c = newGemini(cfg, hc)
	case ProviderOpenAI:
		c = newOpenAI(cfg, hc)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if cfg.Limiter != nil {
		c = &limited{next: c, lim: cfg.Limiter}
	}
	return c, nil
}

// NewLimiter converts a requests-per-minute budget into a limiter.
// Zero or less means unlimited and returns nil.
func NewLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

type limited struct {
	next Client
	lim  *rate.Limiter
}

func (l *limited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &ServiceError{Timeout: true, Message: "timed out waiting for rate limiter", Err: err}
		}
		return "", &ServiceError{RateLimited: true, Message: "client-side rate limit", Err: err}
	}
	return l.next.Generate(ctx, prompt)
}
