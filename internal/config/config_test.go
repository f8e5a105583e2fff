package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_CHAT_MODEL", "")
	t.Setenv("OLLAMA_EMBED_MODEL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg := Load()
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Fatalf("expected default ollama url, got %q", cfg.OllamaURL)
	}
	if cfg.OllamaChatModel != "phi3" {
		t.Fatalf("expected default chat model phi3, got %q", cfg.OllamaChatModel)
	}
	if cfg.OllamaEmbedModel != "all-minilm" {
		t.Fatalf("expected default embed model all-minilm, got %q", cfg.OllamaEmbedModel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected default upload limit 10 MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTLMinutes != 120 {
		t.Fatalf("expected default session ttl 120, got %d", cfg.SessionTTLMinutes)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("OLLAMA_CHAT_MODEL", "llama3.1:8b")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("API_RATE_LIMIT_RPS", "5")

	cfg := Load()
	if cfg.OllamaChatModel != "llama3.1:8b" {
		t.Fatalf("expected chat model override, got %q", cfg.OllamaChatModel)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("expected upload limit override, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("expected rate limit override, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadFallsBackOnUnparsableInt(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "soon")

	cfg := Load()
	if cfg.SessionTTLMinutes != 120 {
		t.Fatalf("expected fallback ttl 120, got %d", cfg.SessionTTLMinutes)
	}
}
