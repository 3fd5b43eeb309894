package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.chatlens/config.toml.
type Config struct {
	DefaultSession string    `toml:"default_session"`
	Retrieval      Retrieval `toml:"retrieval"`
	LLM            LLM       `toml:"llm"`
}

// Retrieval selects how question context is chosen.
type Retrieval struct {
	Backend   string   `toml:"backend"`
	TopK      int      `toml:"top_k"`
	Stopwords []string `toml:"stopwords"`
}

// LLM configures the language-model endpoint.
type LLM struct {
	Provider          string   `toml:"provider"`
	Model             string   `toml:"model"`
	BaseURL           string   `toml:"base_url"`
	Timeout           Duration `toml:"timeout"`
	APIKeyEnv         string   `toml:"api_key_env"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
}

// Duration is a time.Duration written as a Go duration string ("60s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// providerDefaults fill llm.model and llm.api_key_env when the file leaves
// them out, so that switching provider does not keep the other one's model.
var providerDefaults = map[string]struct{ model, keyEnv string }{
	"gemini": {"gemini-2.0-flash", "GEMINI_API_KEY"},
	"openai": {"gpt-4o-mini", "OPENAI_API_KEY"},
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := base()
	cfg.applyProviderDefaults()
	return cfg
}

// base is Default without the provider-dependent fields.
func base() *Config {
	return &Config{
		DefaultSession: "main",
		Retrieval: Retrieval{
			Backend: "lexical",
			TopK:    20,
		},
		LLM: LLM{
			Provider:          "gemini",
			Timeout:           Duration{60 * time.Second},
			RequestsPerMinute: 15,
		},
	}
}

func (c *Config) applyProviderDefaults() {
	d, ok := providerDefaults[c.LLM.Provider]
	if !ok {
		return
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.model
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = d.keyEnv
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
// Keys absent from the file keep their Default values; model and
// api_key_env default per provider.
func Load(path string) (*Config, error) {
	cfg := base()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyProviderDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate rejects values the daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Retrieval.Backend {
	case "lexical", "fts":
	default:
		return fmt.Errorf("retrieval.backend: unknown backend %q (want lexical or fts)", c.Retrieval.Backend)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	if _, ok := providerDefaults[c.LLM.Provider]; !ok {
		return fmt.Errorf("llm.provider: unknown provider %q (want gemini or openai)", c.LLM.Provider)
	}
	if c.LLM.Timeout.Duration <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must not be negative")
	}
	return nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
