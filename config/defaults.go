package config

func defaultConfig() *Config {
	return &Config{
		DataDirectory:   "~/.local/share/mnemo",
		DefaultProvider: "ollama",
		Providers: []ProviderConfig{
			{ID: "ollama", BaseURL: "http://localhost:11434", Model: "llama3.1:latest"},
		},
		MemoryBackend:     "file",
		TimeoutSeconds:    120,
		ArchiveEnabled:    true,
		CredentialsMethod: string(SecurityPlainText),
	}
}

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/mnemo",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultProvider: "ollama",
		Providers: []ProviderConfig{
			{ID: "ollama", BaseURL: "http://localhost:11434", Model: "llama3.1:latest"},
		},
		Memory: MemoryConfig{Backend: "file"},
		Assistant: AssistantConfig{
			TimeoutSeconds: 120,
		},
		Archive:     ArchiveConfig{Enabled: true},
		Credentials: CredentialsConfig{Method: string(SecurityPlainText)},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# mnemo System Configuration
# Location: ~/.config/mnemo/settings.toml
# This file uses TOML format: https://toml.io

# Directory where memory, exchanges and user config are stored
data_directory = "~/.local/share/mnemo"
`
}

func GenerateUserConfigTemplate() string {
	return `# mnemo User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Provider used when --provider is not given
default_provider = "ollama"

[[providers]]
id = "ollama"
base_url = "http://localhost:11434"
model = "llama3.1:latest"

# API keys are never stored here. They are read from the environment
# (OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) or from the
# credential store configured under [credentials] below.
#
# [[providers]]
# id = "anthropic"
# model = "claude-sonnet-4-5-20250929"
#
# [[providers]]
# id = "openrouter"
# model = "meta-llama/llama-3.2-90b-instruct"

[memory]
# Where the distilled memory blob lives: "file" or "sqlite"
backend = "file"

[assistant]
# Timeout for each completion call, in seconds
timeout_seconds = 120

# Uncomment to override the stock prompts.
# system_prompt = ""
# distill_instruction = ""

[archive]
# Keep a JSON record of every exchange under <data_directory>/exchanges
enabled = true

[credentials]
# How stored API keys are kept on disk:
#   "plaintext" - <data_directory>/credentials.toml (0600)
#   "encrypted" - <data_directory>/credentials.enc, AES-256-GCM with a key
#                 derived from MNEMO_CREDENTIALS_PASSPHRASE
method = "plaintext"
`
}
