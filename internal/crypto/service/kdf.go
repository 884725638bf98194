package service

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// HMACDeriver implements KeyDeriver as HMAC-SHA256(masterSecret, salt).
//
// This is the default wire contract: cheap, stateless, and exactly 32 bytes
// of output. Derived keys live only for the single encrypt or decrypt call
// and must never be logged.
type HMACDeriver struct{}

// NewHMACDeriver creates the HMAC-SHA256 key deriver.
func NewHMACDeriver() *HMACDeriver {
	return &HMACDeriver{}
}

// Derive computes HMAC-SHA256 keyed with the master secret over the salt.
func (d *HMACDeriver) Derive(secret, salt []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, secret)
	mac.Write(salt)
	return mac.Sum(nil), nil
}

// PBKDF2Deriver implements KeyDeriver as PBKDF2-HMAC-SHA256 with 100_000
// iterations, for backends that derive envelope keys with PBKDF2. Higher
// cost per envelope than the HMAC strategy.
type PBKDF2Deriver struct{}

// NewPBKDF2Deriver creates the PBKDF2-HMAC-SHA256 key deriver.
func NewPBKDF2Deriver() *PBKDF2Deriver {
	return &PBKDF2Deriver{}
}

// Derive stretches the master secret with the salt into a 32-byte key.
func (d *PBKDF2Deriver) Derive(secret, salt []byte) ([]byte, error) {
	return pbkdf2.Key(secret, salt, cryptoDomain.PBKDF2Iterations, cryptoDomain.DerivedKeySize, sha256.New), nil
}

// NewKeyDeriver creates the KeyDeriver for the configured strategy.
// Returns ErrUnsupportedKDF for an unknown strategy.
//
// The chosen strategy must match the backend: mixing strategies between
// client and server breaks interoperability, so exactly one is selected at
// startup and used for both directions.
func NewKeyDeriver(strategy cryptoDomain.KDFStrategy) (KeyDeriver, error) {
	switch strategy {
	case cryptoDomain.KDFHMACSHA256:
		return NewHMACDeriver(), nil
	case cryptoDomain.KDFPBKDF2SHA256:
		return NewPBKDF2Deriver(), nil
	default:
		return nil, cryptoDomain.ErrUnsupportedKDF
	}
}
