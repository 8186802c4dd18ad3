// Package secrets provides the symmetric encryption used for campaign
// payloads and note bodies.
//
// The cipher derives a 256-bit key from the configured passphrase with
// scrypt and encrypts with AES-GCM. Ciphertext layout is
// base64(nonce || sealed), with a 12-byte nonce. Decryption of tampered or
// truncated ciphertext fails with ErrInvalidCiphertext rather than
// returning garbage.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// ErrInvalidCiphertext is returned when ciphertext fails authentication or
// is too short to contain a nonce.
var ErrInvalidCiphertext = errors.New("invalid or tampered ciphertext")

const (
	nonceSize = 12 // standard for GCM
	keySize   = 32 // AES-256

	// scrypt parameters per the package's recommended interactive defaults.
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// keySalt is a fixed application salt for passphrase key derivation. The
// passphrase itself is the secret; the salt only separates this key space
// from other scrypt users of the same passphrase.
var keySalt = []byte("campaignvault.data.v1")

// Cipher encrypts and decrypts strings with a key derived from a
// passphrase. It is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives the encryption key from the passphrase and prepares
// the AEAD. The passphrase must be non-empty.
func NewCipher(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, errors.New("encryption passphrase is required")
	}

	key, err := scrypt.Key([]byte(passphrase), keySalt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any decode, length, or authentication failure
// is reported as ErrInvalidCiphertext.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
