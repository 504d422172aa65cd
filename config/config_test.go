package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/felix")
	t.Setenv("MNEMO_TEST_DIR", "/srv/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tilde expansion",
			input: "~/.local/share/mnemo",
			want:  "/home/felix/.local/share/mnemo",
		},
		{
			name:  "bare tilde",
			input: "~",
			want:  "/home/felix",
		},
		{
			name:  "env var expansion",
			input: "$MNEMO_TEST_DIR/mnemo",
			want:  "/srv/data/mnemo",
		},
		{
			name:  "absolute path unchanged",
			input: "/var/lib/mnemo",
			want:  "/var/lib/mnemo",
		},
		{
			name:  "cleans redundant segments",
			input: "/var/lib/../lib/mnemo",
			want:  "/var/lib/mnemo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.input)
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProviderLookup(t *testing.T) {
	cfg := defaultConfig()
	cfg.Providers = []ProviderConfig{
		{ID: "ollama", BaseURL: "http://localhost:11434", Model: "llama3.1:latest"},
		{ID: "anthropic", Model: "claude-sonnet-4-5-20250929"},
	}

	got := cfg.Provider("anthropic")
	if got.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("Provider(anthropic).Model = %q, want configured model", got.Model)
	}

	// Unknown IDs fall back to a bare entry so provider defaults apply
	got = cfg.Provider("openai")
	if got.ID != "openai" {
		t.Errorf("Provider(openai).ID = %q, want %q", got.ID, "openai")
	}
	if got.Model != "" || got.BaseURL != "" {
		t.Errorf("Provider(openai) should have empty model and base URL, got %+v", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MNEMO_PROVIDER", "anthropic")
	t.Setenv("MNEMO_MODEL", "claude-haiku-4-5")
	t.Setenv("MNEMO_MEMORY_BACKEND", "sqlite")
	t.Setenv("MNEMO_OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("MNEMO_TIMEOUT_SECONDS", "30")

	cfg := defaultConfig()
	cfg.applyEnvOverrides()

	if cfg.DefaultProvider != "anthropic" {
		t.Errorf("DefaultProvider = %q, want anthropic", cfg.DefaultProvider)
	}
	if cfg.MemoryBackend != "sqlite" {
		t.Errorf("MemoryBackend = %q, want sqlite", cfg.MemoryBackend)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if got := cfg.Provider("anthropic").Model; got != "claude-haiku-4-5" {
		t.Errorf("Provider(anthropic).Model = %q, want claude-haiku-4-5", got)
	}
	if got := cfg.Provider("ollama").BaseURL; got != "http://gpu-box:11434" {
		t.Errorf("Provider(ollama).BaseURL = %q, want http://gpu-box:11434", got)
	}
}

func TestApplyEnvOverridesBadTimeout(t *testing.T) {
	t.Setenv("MNEMO_TIMEOUT_SECONDS", "not-a-number")

	cfg := defaultConfig()
	cfg.applyEnvOverrides()

	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want default 120", cfg.TimeoutSeconds)
	}
}

func TestApplyUserConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.applyUserConfig(&UserConfig{
		DefaultProvider: "openrouter",
		Providers: []ProviderConfig{
			{ID: "openrouter", Model: "meta-llama/llama-3.2-90b-instruct"},
		},
		Memory:      MemoryConfig{Backend: "sqlite"},
		Assistant:   AssistantConfig{TimeoutSeconds: 45, SystemPrompt: "Be terse."},
		Archive:     ArchiveConfig{Enabled: false},
		Credentials: CredentialsConfig{Method: "encrypted"},
	})

	if cfg.DefaultProvider != "openrouter" {
		t.Errorf("DefaultProvider = %q, want openrouter", cfg.DefaultProvider)
	}
	if cfg.MemoryBackend != "sqlite" {
		t.Errorf("MemoryBackend = %q, want sqlite", cfg.MemoryBackend)
	}
	if cfg.SystemPrompt != "Be terse." {
		t.Errorf("SystemPrompt = %q, want override", cfg.SystemPrompt)
	}
	if cfg.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.TimeoutSeconds)
	}
	if cfg.ArchiveEnabled {
		t.Error("ArchiveEnabled = true, want false")
	}
	if cfg.CredentialsMethod != "encrypted" {
		t.Errorf("CredentialsMethod = %q, want encrypted", cfg.CredentialsMethod)
	}
}

func TestApplyUserConfigKeepsDefaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.applyUserConfig(&UserConfig{})

	if cfg.DefaultProvider != "ollama" {
		t.Errorf("DefaultProvider = %q, want default ollama", cfg.DefaultProvider)
	}
	if cfg.MemoryBackend != "file" {
		t.Errorf("MemoryBackend = %q, want default file", cfg.MemoryBackend)
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want default 120", cfg.TimeoutSeconds)
	}
}

func TestLoadCreatesDefaultFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dataDir := filepath.Join(home, "data")
	t.Setenv("MNEMO_DATA_DIR", dataDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DataDir() != dataDir {
		t.Errorf("DataDir() = %q, want %q", cfg.DataDir(), dataDir)
	}
	if !FileExists(filepath.Join(home, ".config", "mnemo", "settings.toml")) {
		t.Error("Load() did not create settings.toml")
	}
	if !FileExists(filepath.Join(dataDir, "config.toml")) {
		t.Error("Load() did not create config.toml in data dir")
	}
}

func TestTemplatesParse(t *testing.T) {
	// The generated templates must round-trip through the TOML decoder
	sys := GenerateSystemConfigTemplate()
	if !strings.Contains(sys, "data_directory") {
		t.Error("system template missing data_directory")
	}

	user := GenerateUserConfigTemplate()
	for _, want := range []string{"default_provider", "[[providers]]", "[memory]", "[assistant]", "[archive]", "[credentials]"} {
		if !strings.Contains(user, want) {
			t.Errorf("user template missing %q", want)
		}
	}
}
