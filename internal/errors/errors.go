// Package errors provides standardized root errors that express the failure
// modes of the payload cryptography layer rather than infrastructure details.
// Domain packages wrap these roots to build their error taxonomy, and callers
// classify failures with errors.Is against the roots.
package errors

import (
	"errors"
	"fmt"
)

// Root errors shared across all domain modules.
var (
	// ErrInvalidInput indicates malformed input: bad base64, a truncated
	// token or envelope, or configuration that fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates input in a recognized shape but with an
	// unsupported parameter (e.g., an unknown token version byte).
	ErrUnsupported = errors.New("unsupported")

	// ErrIntegrity indicates an authenticity check failed (HMAC mismatch or
	// AEAD tag verification failure). Treat as tampering or a wrong key;
	// never degrade to returning partial plaintext.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrCryptoFailure indicates a cipher operation itself failed, such as
	// invalid padding after an otherwise well-formed decrypt.
	ErrCryptoFailure = errors.New("crypto operation failed")

	// ErrServerReported indicates the backend explicitly answered with an
	// error payload instead of an encrypted envelope. Not a crypto fault.
	ErrServerReported = errors.New("server reported error")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
