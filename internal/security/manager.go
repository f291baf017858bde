// Package security encrypts the tool's side files (settings, users) at
// rest and gates editing behind a credential check.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const keySize = 32 // AES-256

var ErrCiphertextTooShort = errors.New("ciphertext shorter than nonce")

// Manager holds the symmetric key and wraps AES-GCM. The key lives in a
// file next to the settings; it is generated on first use.
type Manager struct {
	aead cipher.AEAD
}

// NewManager loads the key from keyPath, generating and persisting a fresh
// one when the file does not exist.
func NewManager(keyPath string) (*Manager, error) {
	key, err := os.ReadFile(keyPath)
	if errors.Is(err, os.ErrNotExist) {
		key, err = generateKey(keyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading key: %w", err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("key file %s: want %d bytes, got %d", keyPath, keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	return &Manager{aead: aead}, nil
}

// Encrypt seals the plaintext as nonce||ciphertext.
func (m *Manager) Encrypt(plain []byte) ([]byte, error) {
	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return m.aead.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt opens a blob produced by Encrypt.
func (m *Manager) Decrypt(blob []byte) ([]byte, error) {
	if len(blob) < m.aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:m.aead.NonceSize()], blob[m.aead.NonceSize():]
	plain, err := m.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return plain, nil
}

// SaveJSON marshals v and writes it encrypted with restrictive permissions.
func (m *Manager) SaveJSON(path string, v any) error {
	plain, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	blob, err := m.Encrypt(plain)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads and decrypts path into v. Files written before encryption
// was introduced are plain JSON, so a failed decrypt falls back to parsing
// the raw bytes.
func (m *Manager) LoadJSON(path string, v any) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	plain, err := m.Decrypt(blob)
	if err != nil {
		if json.Unmarshal(blob, v) == nil {
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := json.Unmarshal(plain, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func generateKey(keyPath string) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing key: %w", err)
	}
	return key, nil
}
