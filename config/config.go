// Package config loads mnemo's layered TOML configuration: a small system
// file under ~/.config/mnemo pointing at the data directory, and a user file
// inside the data directory with provider, memory, and assistant settings.
// MNEMO_* environment variables override both.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

// ProviderConfig is one entry in the user's provider list.
type ProviderConfig struct {
	ID      string `toml:"id"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

type MemoryConfig struct {
	Backend string `toml:"backend"` // "file" or "sqlite"
}

type AssistantConfig struct {
	SystemPrompt       string `toml:"system_prompt,omitempty"`
	DistillInstruction string `toml:"distill_instruction,omitempty"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
}

type ArchiveConfig struct {
	Enabled bool `toml:"enabled"`
}

type CredentialsConfig struct {
	Method string `toml:"method"` // "plaintext" or "encrypted"
}

type UserConfig struct {
	DefaultProvider string            `toml:"default_provider"`
	Providers       []ProviderConfig  `toml:"providers"`
	Memory          MemoryConfig      `toml:"memory"`
	Assistant       AssistantConfig   `toml:"assistant"`
	Archive         ArchiveConfig     `toml:"archive"`
	Credentials     CredentialsConfig `toml:"credentials"`
}

// Config is the flattened, resolved configuration the rest of the program
// consumes.
type Config struct {
	DataDirectory      string
	DefaultProvider    string
	Providers          []ProviderConfig
	MemoryBackend      string
	SystemPrompt       string
	DistillInstruction string
	TimeoutSeconds     int
	ArchiveEnabled     bool
	CredentialsMethod  string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// Provider returns the configured entry for a provider ID, falling back to a
// bare entry so an ID that was never written to the config still works with
// provider defaults.
func (c *Config) Provider(id string) ProviderConfig {
	for _, p := range c.Providers {
		if p.ID == id {
			return p
		}
	}
	return ProviderConfig{ID: id}
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("MNEMO_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if provider := os.Getenv("MNEMO_PROVIDER"); provider != "" {
		c.DefaultProvider = provider
	}
	if backend := os.Getenv("MNEMO_MEMORY_BACKEND"); backend != "" {
		c.MemoryBackend = backend
	}
	if model := os.Getenv("MNEMO_MODEL"); model != "" {
		c.setProviderModel(c.DefaultProvider, model)
	}
	if host := os.Getenv("MNEMO_OLLAMA_HOST"); host != "" {
		c.setProviderBaseURL("ollama", host)
	}
	if timeout := os.Getenv("MNEMO_TIMEOUT_SECONDS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
}

func (c *Config) setProviderModel(id, model string) {
	for i := range c.Providers {
		if c.Providers[i].ID == id {
			c.Providers[i].Model = model
			return
		}
	}
	c.Providers = append(c.Providers, ProviderConfig{ID: id, Model: model})
}

func (c *Config) setProviderBaseURL(id, baseURL string) {
	for i := range c.Providers {
		if c.Providers[i].ID == id {
			c.Providers[i].BaseURL = baseURL
			return
		}
	}
	c.Providers = append(c.Providers, ProviderConfig{ID: id, BaseURL: baseURL})
}

func CheckDebug() bool {
	debug := os.Getenv("MNEMO_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - may contain sensitive debug info
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (MNEMO_DEBUG=%s) ===", os.Getenv("MNEMO_DEBUG"))
}

// Load resolves the full configuration: defaults, then the system and user
// TOML files (created with defaults when missing), then MNEMO_* environment
// overrides. The data directory is created with user-only permissions.
func Load() (*Config, error) {
	cfg := defaultConfig()

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	// MNEMO_DATA_DIR must win before the user config is looked up inside it.
	if dataDir := os.Getenv("MNEMO_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg.DefaultProvider != "" {
		c.DefaultProvider = userCfg.DefaultProvider
	}
	if len(userCfg.Providers) > 0 {
		c.Providers = userCfg.Providers
	}
	if userCfg.Memory.Backend != "" {
		c.MemoryBackend = userCfg.Memory.Backend
	}
	if userCfg.Assistant.SystemPrompt != "" {
		c.SystemPrompt = userCfg.Assistant.SystemPrompt
	}
	if userCfg.Assistant.DistillInstruction != "" {
		c.DistillInstruction = userCfg.Assistant.DistillInstruction
	}
	if userCfg.Assistant.TimeoutSeconds > 0 {
		c.TimeoutSeconds = userCfg.Assistant.TimeoutSeconds
	}
	c.ArchiveEnabled = userCfg.Archive.Enabled
	if userCfg.Credentials.Method != "" {
		c.CredentialsMethod = userCfg.Credentials.Method
	}
}
