// Package usecase implements the application layer of the payload
// cryptography module.
//
// Two use cases sit on top of the crypto services:
//
//   - ConfigSecretUseCase turns at-rest ENC(<token>) config values into
//     their plaintext secrets (and mints them, on the provisioning side).
//   - PayloadUseCase wraps and unwraps request/response bodies in encrypted
//     envelopes, gated by the EncryptionPolicy built at startup.
//
// Both are pure, synchronous computations over byte buffers: no shared
// mutable state between calls, no retries (a failed decrypt is
// deterministic), and no locking needed for concurrent use.
package usecase

import (
	"context"
)

// ConfigSecretUseCase manages at-rest wrapped configuration secrets.
type ConfigSecretUseCase interface {
	// IsWrapped reports whether value carries the ENC(...) wrapper.
	IsWrapped(value string) bool

	// Unwrap returns the plaintext secret for a wrapped value. Unwrapped
	// values pass through unchanged and never fail. A failed decrypt of a
	// wrapped value propagates the error; it never falls back to returning
	// the wrapped input, since that would mask misconfiguration.
	Unwrap(ctx context.Context, value string) (string, error)

	// Wrap encrypts a plaintext secret into an ENC(...) value
	// (provisioning side).
	Wrap(ctx context.Context, value string) (string, error)
}

// PayloadUseCase encrypts and decrypts wire request/response bodies.
type PayloadUseCase interface {
	// Encrypt serializes payload to JSON and, when the policy is enabled,
	// seals it into a {"encryptedPayload": ...} wire body. With the policy
	// disabled the plain JSON serialization is returned untouched.
	Encrypt(ctx context.Context, payload any) ([]byte, error)

	// Decrypt parses a response body into target. When the policy is
	// enabled the three-tier fallback applies: encrypted envelope, then the
	// backend's generic error shape (returned as *domain.ServerError), then
	// plain JSON - some endpoints legitimately answer unencrypted even when
	// the policy is on.
	Decrypt(ctx context.Context, body []byte, target any) error
}
