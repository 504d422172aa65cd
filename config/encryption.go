package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// EncryptionMethod defines how credentials are stored on disk
type EncryptionMethod string

const (
	EncryptionNone       EncryptionMethod = "none"
	EncryptionPassphrase EncryptionMethod = "passphrase"
)

const (
	saltSize     = 16
	pbkdf2Rounds = 600000
	keySize      = 32 // AES-256
)

// EncryptionManager provides passphrase-based encryption for credential data.
// Keys are derived per file with PBKDF2 so the same passphrase never reuses
// a salt.
type EncryptionManager struct {
	method     EncryptionMethod
	passphrase string
}

// NewEncryptionManager creates a new encryption manager
func NewEncryptionManager(method EncryptionMethod) *EncryptionManager {
	return &EncryptionManager{
		method: method,
	}
}

// SetPassphrase sets the passphrase used for key derivation
func (e *EncryptionManager) SetPassphrase(passphrase string) {
	e.passphrase = passphrase
}

// GetMethod returns the current encryption method
func (e *EncryptionManager) GetMethod() EncryptionMethod {
	return e.method
}

// Encrypt encrypts data using the configured method.
// Returns the original data unchanged if method is EncryptionNone.
func (e *EncryptionManager) Encrypt(plaintext []byte) ([]byte, error) {
	switch e.method {
	case EncryptionNone:
		return plaintext, nil

	case EncryptionPassphrase:
		if e.passphrase == "" {
			return nil, fmt.Errorf("passphrase required for encryption")
		}
		return encryptAESGCM(plaintext, e.passphrase)

	default:
		return nil, fmt.Errorf("unknown encryption method: %s", e.method)
	}
}

// Decrypt decrypts data using the configured method.
// Returns the original data unchanged if method is EncryptionNone.
func (e *EncryptionManager) Decrypt(ciphertext []byte) ([]byte, error) {
	switch e.method {
	case EncryptionNone:
		return ciphertext, nil

	case EncryptionPassphrase:
		if e.passphrase == "" {
			return nil, fmt.Errorf("passphrase required for decryption")
		}
		return decryptAESGCM(ciphertext, e.passphrase)

	default:
		return nil, fmt.Errorf("unknown encryption method: %s", e.method)
	}
}

// encryptAESGCM encrypts data using AES-256-GCM with a PBKDF2-derived key
// Format: [salt (16 bytes)][nonce (12 bytes)][ciphertext + tag]
func encryptAESGCM(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	key := deriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+gcm.NonceSize()+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// decryptAESGCM decrypts data using AES-256-GCM
// Expects format: [salt (16 bytes)][nonce (12 bytes)][ciphertext + tag]
func decryptAESGCM(data []byte, passphrase string) ([]byte, error) {
	if len(data) < saltSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	salt := data[:saltSize]
	key := deriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < saltSize+nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// deriveKey derives a 32-byte AES-256 key from a passphrase and salt
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Rounds, keySize, sha256.New)
}
