// Package seal encrypts small values at rest with a key derived from a passphrase.
package seal

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltLen = 16
	prefix  = "sealed:v1:"

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Sealer encrypts and decrypts values with XChaCha20-Poly1305.
type Sealer struct {
	passphrase []byte
}

// New returns a Sealer for the passphrase.
func New(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("seal: empty passphrase")
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

func (s *Sealer) key(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext. Output is "sealed:v1:" + base64(salt|nonce|ciphertext).
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("seal: salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("seal: cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal: nonce: %w", err)
	}

	out := make([]byte, 0, saltLen+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, salt)
	return []byte(prefix + base64.StdEncoding.EncodeToString(out)), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	str := string(sealed)
	if !strings.HasPrefix(str, prefix) {
		return nil, fmt.Errorf("seal: value is not sealed")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(str, prefix))
	if err != nil {
		return nil, fmt.Errorf("seal: decode: %w", err)
	}
	if len(raw) < saltLen+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("seal: value too short")
	}
	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+chacha20poly1305.NonceSizeX]
	ciphertext := raw[saltLen+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("seal: cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, salt)
	if err != nil {
		return nil, fmt.Errorf("seal: open: %w", err)
	}
	return plaintext, nil
}
