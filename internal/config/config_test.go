package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"studybuddy/internal/assistant"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("STUDYBUDDY_HOME", home)
	for _, k := range []string{
		"STUDYBUDDY_DATA_DIR", "STUDYBUDDY_BACKEND", "STUDYBUDDY_THEME",
		"STUDYBUDDY_LOG_LEVEL", "STUDYBUDDY_ASSISTANT_API_KEY", "STUDYBUDDY_ASSISTANT_BASE_URL",
		"STUDYBUDDY_ASSISTANT_MODEL", "STUDYBUDDY_ASSISTANT_TIMEOUT",
		"OPENAI_API_KEY", "GROQ_API_KEY",
	} {
		t.Setenv(k, "")
	}
	// Keep a stray .env in the package dir from leaking in.
	t.Chdir(t.TempDir())
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != home || cfg.Backend != "sqlite" || cfg.Theme != "light" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Assistant.Model != "gpt-4o-mini" || cfg.Assistant.Timeout != 60*time.Second || cfg.Assistant.SlowAfter != 10*time.Second {
		t.Fatalf("unexpected assistant defaults: %+v", cfg.Assistant)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.yaml")
	yaml := "backend: file\ntheme: dark\nassistant:\n  timeout: 5s\n  model: m-file\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != path || cfg.Backend != "file" || cfg.Theme != "dark" || cfg.Assistant.Timeout != 5*time.Second || cfg.Assistant.Model != "m-file" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("STUDYBUDDY_BACKEND", "memory")
	t.Setenv("STUDYBUDDY_ASSISTANT_MODEL", "m-env")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "memory" || cfg.Assistant.Model != "m-env" {
		t.Fatalf("env should override file: %+v", cfg)
	}
}

func TestLoad_ProviderKeys(t *testing.T) {
	isolate(t)
	t.Setenv("GROQ_API_KEY", "gsk")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := cfg.Assistant
	if a.APIKey != "gsk" || a.BaseURL != assistant.GroqBaseURL || a.Model != assistant.DefaultGroqModel {
		t.Fatalf("expected groq settings, got %+v", a)
	}

	t.Setenv("OPENAI_API_KEY", "sk")
	cfg, _ = Load("")
	if cfg.Assistant.APIKey != "sk" || cfg.Assistant.BaseURL != "" || cfg.Assistant.Model != assistant.DefaultModel {
		t.Fatalf("expected openai settings, got %+v", cfg.Assistant)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("STUDYBUDDY_THEME=dark\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// t.Setenv above registered a restore for the variable; godotenv only
	// fills unset variables, so clear it first.
	_ = os.Unsetenv("STUDYBUDDY_THEME")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected theme from .env, got %q", cfg.Theme)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
