// Package domain defines the core payload cryptography domain models.
package domain

// KDFStrategy represents the key derivation strategy applied per envelope.
//
// The strategy is part of the wire contract with the backend: both sides must
// derive the per-envelope key the same way or decryption fails with an
// integrity error. One strategy is selected at startup and applied uniformly
// to both encrypt and decrypt.
type KDFStrategy string

const (
	// KDFHMACSHA256 derives the envelope key as HMAC-SHA256(masterSecret, salt).
	// Cheap and stateless; the default wire contract.
	KDFHMACSHA256 KDFStrategy = "hmac-sha256"

	// KDFPBKDF2SHA256 derives the envelope key with PBKDF2-HMAC-SHA256 using
	// PBKDF2Iterations rounds. Used by backends that derive with PBKDF2.
	KDFPBKDF2SHA256 KDFStrategy = "pbkdf2-sha256"
)

const (
	// MasterKeySize is the required size of the decoded config master key.
	MasterKeySize = 32

	// SigningKeySize is the size of the HMAC signing half of the master key.
	SigningKeySize = 16

	// EncryptionKeySize is the size of the AES half of the master key.
	EncryptionKeySize = 16

	// DerivedKeySize is the size of a per-envelope derived key (AES-256).
	DerivedKeySize = 32

	// SaltSize is the size of the per-envelope key derivation salt.
	SaltSize = 32

	// NonceSize is the AES-GCM nonce size used for envelopes.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag size.
	TagSize = 16

	// PBKDF2Iterations is the iteration count for the PBKDF2 strategy.
	PBKDF2Iterations = 100_000
)

const (
	// FernetVersion is the only supported token version byte.
	FernetVersion byte = 0x80

	// FernetTimestampSize is the size of the big-endian timestamp field.
	FernetTimestampSize = 8

	// FernetIVSize is the AES-CBC IV size in a token.
	FernetIVSize = 16

	// FernetHMACSize is the size of the trailing HMAC-SHA256 field.
	FernetHMACSize = 32

	// FernetMinTokenSize is the minimum decoded token length
	// (version + timestamp + IV + empty ciphertext + HMAC).
	FernetMinTokenSize = 1 + FernetTimestampSize + FernetIVSize + FernetHMACSize
)
