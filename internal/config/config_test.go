package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 16009 {
		t.Errorf("expected default port 16009, got %d", cfg.Server.Port)
	}
	if cfg.LLM.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected API key placeholder")
	}
	if cfg.Analysis.MaxIterations != 20 {
		t.Errorf("expected 20 max iterations, got %d", cfg.Analysis.MaxIterations)
	}
	if cfg.Analysis.MaxKeywords != 10 {
		t.Errorf("expected 10 max keywords, got %d", cfg.Analysis.MaxKeywords)
	}
}

func TestServerConfigAddr(t *testing.T) {
	c := ServerConfig{Host: "0.0.0.0", Port: 3000}
	if got := c.Addr(); got != "0.0.0.0:3000" {
		t.Errorf("unexpected addr: %s", got)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})

	t.Run("empty value", func(t *testing.T) {
		if result := ResolveEnvVars(""); result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestToAnalysisSettings(t *testing.T) {
	os.Setenv("TEST_LECTERN_KEY", "resolved-key")
	defer os.Unsetenv("TEST_LECTERN_KEY")

	cfg := &Config{
		LLM: LLMConfig{
			Model:   "gpt-4o",
			BaseURL: "https://example.test/v1",
			APIKey:  "${TEST_LECTERN_KEY}",
		},
		Analysis: AnalysisConfig{MaxIterations: 15, MaxKeywords: 7},
	}

	settings := cfg.ToAnalysisSettings()
	if settings.Model != "gpt-4o" {
		t.Errorf("unexpected model: %s", settings.Model)
	}
	if settings.APIKey != "resolved-key" {
		t.Errorf("expected env var resolved, got %s", settings.APIKey)
	}
	if settings.MaxIterations != 15 || settings.MaxKeywords != 7 {
		t.Errorf("unexpected limits: %+v", settings)
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Lectern configuration") {
		t.Error("expected comment header")
	}
	if !strings.Contains(content, "model: gpt-4o-mini") {
		t.Errorf("expected default model in file:\n%s", content)
	}
	if !strings.Contains(content, "api_key: ${OPENAI_API_KEY}") {
		t.Errorf("expected API key placeholder in file:\n%s", content)
	}
}
