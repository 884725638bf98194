package domain

import (
	"fmt"

	"github.com/allisson/payloadcrypt/internal/errors"
)

// Payload cryptography error definitions.
//
// These domain-specific errors wrap the root errors from internal/errors so
// callers can classify failures with errors.Is while each site still carries
// its own context.
var (
	// ErrInvalidFormat indicates malformed base64, token, or envelope structure.
	ErrInvalidFormat = errors.Wrap(errors.ErrInvalidInput, "invalid format")

	// ErrUnsupportedVersion indicates a token version byte other than 0x80.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrUnsupported, "unsupported token version")

	// ErrIntegrityCheckFailed indicates an HMAC or AEAD tag mismatch.
	//
	// Treat as tampering or a wrong key. The codec never falls back to
	// returning plaintext after this error.
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrIntegrity, "token corrupt or manipulated")

	// ErrDecryptionFailed indicates the cipher operation itself failed,
	// e.g. invalid PKCS#7 padding after CBC decryption.
	ErrDecryptionFailed = errors.Wrap(errors.ErrCryptoFailure, "decryption failed")

	// ErrInvalidKeySize indicates key material of the wrong length.
	//
	// The config master key must decode to exactly 32 bytes and derived
	// envelope keys must be 32 bytes (AES-256).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedKDF indicates an unknown key derivation strategy.
	ErrUnsupportedKDF = errors.Wrap(errors.ErrUnsupported, "unsupported key derivation strategy")
)

// ServerError represents an explicit error payload reported by the backend
// (`{"resultado":"error","mensaje":...,"detalle":...}`). It is not a crypto
// fault: the backend answered, just with an error instead of a body.
type ServerError struct {
	Message string
	Detail  string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error: %s (%s)", e.Message, e.Detail)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// Unwrap links ServerError to the ErrServerReported root for errors.Is checks.
func (e *ServerError) Unwrap() error {
	return errors.ErrServerReported
}
