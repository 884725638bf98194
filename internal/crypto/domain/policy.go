package domain

// EncryptionPolicy is the single source of truth for whether payload
// envelope encryption is active and for the master secret both codecs
// derive from.
//
// The policy is a constructed value, not a mutable global: it is built once
// at process start from configuration (with the secret already unwrapped if
// it shipped as an ENC(...) value) and passed into codec constructors.
// It is immutable after construction, so concurrent readers need no
// synchronization.
type EncryptionPolicy struct {
	enabled bool
	secret  string
}

// NewEncryptionPolicy builds an immutable policy value.
func NewEncryptionPolicy(enabled bool, secret string) EncryptionPolicy {
	return EncryptionPolicy{enabled: enabled, secret: secret}
}

// Enabled reports whether payload envelope encryption is active.
func (p EncryptionPolicy) Enabled() bool {
	return p.enabled
}

// Secret returns the current master secret for envelope key derivation.
func (p EncryptionPolicy) Secret() string {
	return p.secret
}
