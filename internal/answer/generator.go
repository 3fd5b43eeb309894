// Package answer turns retrieved chat context into a language-model answer.
package answer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/llm"
)

// SummarySample is the number of messages a summary is based on.
const SummarySample = 50

var (
	// ErrEmptyQuestion is returned for a blank question.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrNoContext is returned when there are no messages to ground on.
	ErrNoContext = errors.New("no messages to ground the answer on")
)

// Options configures a Generator.
type Options struct {
	// LLM selects the provider. Its APIKey and Timeout are ignored; the key
	// comes per call and the timeout from Timeout below.
	LLM llm.Config
	// Timeout bounds every external call. Required.
	Timeout time.Duration
	// KeyEnv names the environment variable consulted when a call brings
	// no key of its own.
	KeyEnv string
	// RequestsPerMinute enables a client-side limiter when > 0.
	RequestsPerMinute int
	Logger            *zap.Logger
}

// Generator answers questions and summarises chats through an LLM.
type Generator struct {
	cfg     llm.Config
	timeout time.Duration
	keyEnv  string
	log     *zap.Logger

	lookupEnv func(string) (string, bool)
	newClient func(llm.Config) (llm.Client, error)
}

// New validates opts and returns a Generator.
func New(opts Options) (*Generator, error) {
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("answer timeout must be positive, got %s", opts.Timeout)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.LLM
	cfg.APIKey = ""
	cfg.Timeout = opts.Timeout
	if cfg.Limiter == nil {
		cfg.Limiter = llm.NewLimiter(opts.RequestsPerMinute)
	}
	return &Generator{
		cfg:       cfg,
		timeout:   opts.Timeout,
		keyEnv:    opts.KeyEnv,
		log:       log,
		lookupEnv: os.LookupEnv,
		newClient: llm.New,
	}, nil
}

// Provider reports the configured provider name.
func (g *Generator) Provider() string {
	if g.cfg.Provider == "" {
		return llm.ProviderGemini
	}
	return g.cfg.Provider
}

// resolveKey prefers the caller's key, then the configured env var.
func (g *Generator) resolveKey(requestKey string) string {
	if k := strings.TrimSpace(requestKey); k != "" {
		return k
	}
	if g.keyEnv == "" {
		return ""
	}
	k, _ := g.lookupEnv(g.keyEnv)
	return strings.TrimSpace(k)
}

// HasKey reports whether a call with requestKey would carry a credential.
func (g *Generator) HasKey(requestKey string) bool {
	return g.resolveKey(requestKey) != ""
}

// Answer asks the model question grounded on the retrieved context and
// returns its reply verbatim.
func (g *Generator) Answer(ctx context.Context, retrieved []export.Message, question, apiKey string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	if len(retrieved) == 0 {
		return "", ErrNoContext
	}
	return g.generate(ctx, "ask", BuildPrompt(retrieved, question), apiKey,
		zap.Int("question_len", len(question)),
		zap.Int("context_size", len(retrieved)),
	)
}

// Summarize asks the model for a summary of a deterministic sample of seq.
func (g *Generator) Summarize(ctx context.Context, seq export.Sequence, apiKey string) (string, error) {
	sample := Sample(seq, SummarySample)
	if len(sample) == 0 {
		return "", ErrNoContext
	}
	return g.generate(ctx, "summary", BuildSummaryPrompt(sample), apiKey,
		zap.Int("sample_size", len(sample)),
	)
}

func (g *Generator) generate(ctx context.Context, op, prompt, apiKey string, fields ...zap.Field) (string, error) {
	cfg := g.cfg
	cfg.APIKey = g.resolveKey(apiKey)
	if cfg.APIKey == "" {
		return "", &llm.AuthError{Provider: g.Provider(), Message: "no API key provided"}
	}
	client, err := g.newClient(cfg)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	out, err := client.Generate(ctx, prompt)
	fields = append(fields,
		zap.String("op", op),
		zap.String("provider", g.Provider()),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		err = g.normalize(ctx, err)
		g.log.Warn("llm call failed", append(fields, zap.Error(err))...)
		return "", err
	}
	g.log.Info("llm call completed", append(fields, zap.Int("answer_len", len(out)))...)
	return out, nil
}

// normalize guarantees callers only ever see AuthError or ServiceError.
func (g *Generator) normalize(ctx context.Context, err error) error {
	var ae *llm.AuthError
	if errors.As(err, &ae) {
		return err
	}
	var se *llm.ServiceError
	if errors.As(err, &se) {
		if ctx.Err() == context.DeadlineExceeded {
			se.Timeout = true
		}
		return err
	}
	return &llm.ServiceError{
		Provider: g.Provider(),
		Timeout:  ctx.Err() == context.DeadlineExceeded,
		Message:  "request failed",
		Err:      err,
	}
}
