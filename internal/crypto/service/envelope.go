package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// EnvelopeCipherService implements the EnvelopeCipher interface for wire
// payload envelopes.
//
// Each Encrypt call mints a fresh 32-byte salt and derives a single-use
// AES-256 key from (master secret, salt) through the injected KeyDeriver,
// then seals the plaintext with AES-256-GCM under a fresh 12-byte nonce.
// Salts, nonces, and derived keys are never reused across calls, and the
// derived key is zeroed before the call returns.
//
// The service holds no mutable state, so concurrent calls are independent.
type EnvelopeCipherService struct {
	deriver KeyDeriver
}

// NewEnvelopeCipher creates an EnvelopeCipherService with the given key deriver.
func NewEnvelopeCipher(deriver KeyDeriver) *EnvelopeCipherService {
	return &EnvelopeCipherService{deriver: deriver}
}

// Encrypt seals plaintext into a fresh envelope keyed from the master secret.
func (s *EnvelopeCipherService) Encrypt(secret, plaintext []byte) (cryptoDomain.Envelope, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := s.deriver.Derive(secret, salt)
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to derive envelope key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	return cryptoDomain.Envelope{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt re-derives the envelope key from the carried salt and opens the
// envelope.
//
// A GCM authentication failure returns ErrIntegrityCheckFailed: the envelope
// was tampered with or the wrong secret or derivation strategy is in use.
// No partial plaintext is ever returned.
func (s *EnvelopeCipherService) Decrypt(secret []byte, envelope cryptoDomain.Envelope) ([]byte, error) {
	key, err := s.deriver.Derive(secret, envelope.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive envelope key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(envelope.Ciphertext, envelope.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrityCheckFailed
	}

	return plaintext, nil
}
