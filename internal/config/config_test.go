package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.DefaultSession = "work"
	cfg.Retrieval.Backend = "fts"
	cfg.Retrieval.Stopwords = []string{"lol"}
	cfg.LLM.Timeout = Duration{90 * time.Second}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultSession != "work" {
		t.Errorf("DefaultSession = %q, want %q", loaded.DefaultSession, "work")
	}
	if loaded.Retrieval.Backend != "fts" || len(loaded.Retrieval.Stopwords) != 1 {
		t.Errorf("Retrieval = %+v", loaded.Retrieval)
	}
	if loaded.LLM.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %s, want 1m30s", loaded.LLM.Timeout)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `default_session = "friends"

[llm]
provider = "openai"
model = "gpt-4o-mini"
api_key_env = "OPENAI_API_KEY"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultSession != "friends" || cfg.LLM.Provider != "openai" || cfg.LLM.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Retrieval.TopK != 20 || cfg.Retrieval.Backend != "lexical" {
		t.Errorf("retrieval defaults lost: %+v", cfg.Retrieval)
	}
	if cfg.LLM.Timeout.Duration != time.Minute {
		t.Errorf("timeout default lost: %s", cfg.LLM.Timeout)
	}
}

func TestLoadProviderDefaults(t *testing.T) {
	tests := []struct {
		name, content      string
		wantModel, wantEnv string
	}{
		{"no llm section", "", "gemini-2.0-flash", "GEMINI_API_KEY"},
		{"provider only", "[llm]\nprovider = \"openai\"\n", "gpt-4o-mini", "OPENAI_API_KEY"},
		{"explicit model kept", "[llm]\nprovider = \"openai\"\nmodel = \"gpt-4.1\"\n", "gpt-4.1", "OPENAI_API_KEY"},
		{"explicit key env kept", "[llm]\nprovider = \"openai\"\napi_key_env = \"MY_KEY\"\n", "gpt-4o-mini", "MY_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.LLM.Model != tt.wantModel || cfg.LLM.APIKeyEnv != tt.wantEnv {
				t.Errorf("model = %q key env = %q, want %q and %q",
					cfg.LLM.Model, cfg.LLM.APIKeyEnv, tt.wantModel, tt.wantEnv)
			}
		})
	}
}

func TestLoadEmptyStopwordsIsNotNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[retrieval]\nstopwords = []\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Retrieval.Stopwords == nil || len(cfg.Retrieval.Stopwords) != 0 {
		t.Errorf("stopwords = %#v, want an empty non-nil list", cfg.Retrieval.Stopwords)
	}
	if Default().Retrieval.Stopwords != nil {
		t.Error("Default() must leave stopwords nil so the built-in set applies")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.DefaultSession != "main" || cfg.LLM.Provider != "gemini" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("default_session = ["), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("LoadOrDefault() expected error for malformed file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"fts backend", func(c *Config) { c.Retrieval.Backend = "fts" }, ""},
		{"unknown backend", func(c *Config) { c.Retrieval.Backend = "vector" }, "retrieval.backend"},
		{"zero top_k", func(c *Config) { c.Retrieval.TopK = 0 }, "top_k"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "parrot" }, "llm.provider"},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = Duration{} }, "llm.timeout"},
		{"negative rpm", func(c *Config) { c.LLM.RequestsPerMinute = -1 }, "requests_per_minute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[llm]\ntimeout = \"0s\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected validation error")
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
