package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SecurityMethod defines the credential storage method
type SecurityMethod string

const (
	SecurityPlainText SecurityMethod = "plaintext"
	SecurityEncrypted SecurityMethod = "encrypted"
)

// PassphraseEnvVar names the environment variable read for the encrypted
// credential store passphrase.
const PassphraseEnvVar = "MNEMO_CREDENTIALS_PASSPHRASE"

// envKeyOverrides maps provider IDs to well-known API key environment
// variables. Environment always wins over the on-disk store.
var envKeyOverrides = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// CredentialStore manages API keys for remote providers. Keys come from the
// environment first, then from credentials.toml (plaintext) or
// credentials.enc (passphrase encrypted) in the data directory.
type CredentialStore struct {
	method      SecurityMethod
	credentials map[string]string // providerID -> API key
	passphrase  string
	encManager  *EncryptionManager
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(method SecurityMethod) *CredentialStore {
	return &CredentialStore{
		method:      method,
		credentials: make(map[string]string),
	}
}

// SetPassphrase sets the passphrase for the encrypted store
func (c *CredentialStore) SetPassphrase(passphrase string) {
	c.passphrase = passphrase
	if c.encManager != nil {
		c.encManager.SetPassphrase(passphrase)
	}
}

// Load loads credentials from disk based on the configured security method
func (c *CredentialStore) Load(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		creds, err := loadPlainText(dataDir)
		if err != nil {
			return err
		}
		c.credentials = creds
		return nil

	case SecurityEncrypted:
		creds, err := c.loadEncrypted(dataDir)
		if err != nil {
			return err
		}
		c.credentials = creds
		return nil

	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// Save saves credentials to disk based on the configured security method
func (c *CredentialStore) Save(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		return savePlainText(dataDir, c.credentials)

	case SecurityEncrypted:
		return c.saveEncrypted(dataDir)

	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// Get retrieves the API key for a provider. The provider's environment
// variable takes precedence over the stored value.
func (c *CredentialStore) Get(providerID string) string {
	if envVar, ok := envKeyOverrides[strings.ToLower(providerID)]; ok {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return c.credentials[providerID]
}

// Set stores an API key for a provider
func (c *CredentialStore) Set(providerID string, apiKey string) {
	c.credentials[providerID] = apiKey
}

// Delete removes the stored API key for a provider
func (c *CredentialStore) Delete(providerID string) {
	delete(c.credentials, providerID)
}

// GetMethod returns the current security method
func (c *CredentialStore) GetMethod() SecurityMethod {
	return c.method
}

// credentialsPath returns the path to the plain text credentials file
func credentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.toml")
}

// encryptedCredentialsPath returns the path to the encrypted credentials file
func encryptedCredentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.enc")
}

// loadPlainText loads credentials from the plain text TOML file
func loadPlainText(dataDir string) (map[string]string, error) {
	path := credentialsPath(dataDir)

	// Missing file means no stored credentials, not an error
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	type credentialsFile struct {
		Credentials map[string]string `toml:"credentials"`
	}

	var cf credentialsFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if cf.Credentials == nil {
		cf.Credentials = make(map[string]string)
	}
	return cf.Credentials, nil
}

// savePlainText saves credentials to the TOML file with 0600 permissions
func savePlainText(dataDir string, creds map[string]string) error {
	path := credentialsPath(dataDir)

	type credentialsFile struct {
		Credentials map[string]string `toml:"credentials"`
	}

	cf := credentialsFile{
		Credentials: creds,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cf); err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return nil
}

// loadEncrypted loads and decrypts credentials from the encrypted file
func (c *CredentialStore) loadEncrypted(dataDir string) (map[string]string, error) {
	path := encryptedCredentialsPath(dataDir)

	// Missing file means no stored credentials, not an error
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	if err := c.initEncryption(); err != nil {
		return nil, err
	}

	encryptedData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted credentials: %w", err)
	}

	decryptedData, err := c.encManager.Decrypt(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds map[string]string
	if err := json.Unmarshal(decryptedData, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted credentials: %w", err)
	}

	return creds, nil
}

// saveEncrypted encrypts and saves credentials to the encrypted file
func (c *CredentialStore) saveEncrypted(dataDir string) error {
	path := encryptedCredentialsPath(dataDir)

	if err := c.initEncryption(); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(c.credentials, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	encryptedData, err := c.encManager.Encrypt(jsonData)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := os.WriteFile(path, encryptedData, 0600); err != nil {
		return fmt.Errorf("failed to write encrypted credentials: %w", err)
	}

	return nil
}

// initEncryption lazily sets up the encryption manager, pulling the
// passphrase from the environment when one was not set explicitly.
func (c *CredentialStore) initEncryption() error {
	if c.passphrase == "" {
		c.passphrase = os.Getenv(PassphraseEnvVar)
	}
	if c.passphrase == "" {
		return fmt.Errorf("credential store is encrypted - set %s", PassphraseEnvVar)
	}
	if c.encManager == nil {
		c.encManager = NewEncryptionManager(EncryptionPassphrase)
	}
	c.encManager.SetPassphrase(c.passphrase)
	return nil
}
