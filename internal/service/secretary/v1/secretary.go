// Package secretary provides methods for ciphering session tokens.
package secretary

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/secretary"
)

// Check interface implementation explicitly
var (
	_ secretary.Secretary = (*Secretary)(nil)
)

// Secretary defines object structure and its attributes.
type Secretary struct {
	aesgcm  cipher.AEAD
	entropy io.Reader
}

// NewSecretaryService initializes a secretary service with ciphering functionality.
func NewSecretaryService(c *config.SecretConfig) (*Secretary, error) {
	key := sha256.Sum256([]byte(c.UserKey))
	aesblock, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(aesblock)
	if err != nil {
		return nil, err
	}
	return &Secretary{aesgcm: aesgcm, entropy: rand.Reader}, nil
}

// Encode ciphers data with a fresh nonce prepended to the sealed message. A failed nonce read
// panics, sealing with a reused or zeroed nonce breaks GCM and must never reach a client.
func (s *Secretary) Encode(data string) string {
	nonce := make([]byte, s.aesgcm.NonceSize())
	if _, err := io.ReadFull(s.entropy, nonce); err != nil {
		panic(fmt.Sprintf("secretary: nonce read failed: %v", err))
	}
	encoded := s.aesgcm.Seal(nonce, nonce, []byte(data), nil)
	return hex.EncodeToString(encoded)
}

// Decode deciphers data using the previously established cipher.
func (s *Secretary) Decode(msg string) (string, error) {
	msgBytes, err := hex.DecodeString(msg)
	if err != nil {
		return "", err
	}
	if len(msgBytes) < s.aesgcm.NonceSize() {
		return "", errors.New("ciphertext is too short")
	}
	nonce, sealed := msgBytes[:s.aesgcm.NonceSize()], msgBytes[s.aesgcm.NonceSize():]
	decoded, err := s.aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
