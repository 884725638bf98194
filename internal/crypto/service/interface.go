// Package service provides the cryptographic services of the payload codec:
// the AES-GCM AEAD primitive, key derivation strategies, the fernet config
// secret codec, and the wire envelope cipher.
package service

import (
	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// KeyDeriver derives a 32-byte envelope key from the master secret and a
// per-envelope salt. The strategy in use is part of the wire contract with
// the backend and must be applied uniformly to encrypt and decrypt.
type KeyDeriver interface {
	Derive(secret, salt []byte) ([]byte, error)
}

// FernetCodec encrypts and decrypts at-rest config secret tokens.
type FernetCodec interface {
	// Decrypt verifies and decrypts a base64url token into its plaintext.
	Decrypt(token string, keys *cryptoDomain.KeySet) (string, error)

	// Encrypt produces a token for the given plaintext (provisioning side).
	Encrypt(plaintext string, keys *cryptoDomain.KeySet) (string, error)
}

// EnvelopeCipher encrypts and decrypts wire payload envelopes.
type EnvelopeCipher interface {
	// Encrypt mints a fresh salt and nonce, derives the envelope key, and
	// seals plaintext into an Envelope.
	Encrypt(secret, plaintext []byte) (cryptoDomain.Envelope, error)

	// Decrypt re-derives the envelope key from the salt and opens the envelope.
	Decrypt(secret []byte, envelope cryptoDomain.Envelope) ([]byte, error)
}
