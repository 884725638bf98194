package domain

import (
	"fmt"
)

// Envelope represents a decoded wire envelope.
//
// Decoded layout: salt(32) || iv(12) || ciphertext || tag(16). Ciphertext
// is stored normalized as ciphertext||tag, the form AES-GCM produces and
// consumes. Envelopes are minted per call with fresh salt and nonce, never
// persisted and never reused.
type Envelope struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// ParseEnvelope splits decoded envelope bytes into salt, nonce, and
// ciphertext||tag. Returns ErrInvalidFormat if the input is too short to
// contain all three fields.
func ParseEnvelope(raw []byte) (Envelope, error) {
	minSize := SaltSize + NonceSize + TagSize
	if len(raw) < minSize {
		return Envelope{}, fmt.Errorf(
			"%w: envelope must be at least %d bytes, got %d",
			ErrInvalidFormat, minSize, len(raw),
		)
	}

	return Envelope{
		Salt:       raw[:SaltSize],
		Nonce:      raw[SaltSize : SaltSize+NonceSize],
		Ciphertext: raw[SaltSize+NonceSize:],
	}, nil
}

// DecodeEnvelope decodes a standard-base64 envelope string and splits it.
func DecodeEnvelope(encoded string) (Envelope, error) {
	raw, err := DecodeBase64(encoded)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return ParseEnvelope(raw)
}

// Bytes serializes the envelope back to its wire layout.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, len(e.Salt)+len(e.Nonce)+len(e.Ciphertext))
	out = append(out, e.Salt...)
	out = append(out, e.Nonce...)
	out = append(out, e.Ciphertext...)
	return out
}

// Encode serializes the envelope and base64-encodes it for the wire.
func (e Envelope) Encode() string {
	return EncodeBase64(e.Bytes())
}

// WireBody is the one-field JSON object that carries an encoded envelope.
type WireBody struct {
	EncryptedPayload string `json:"encryptedPayload"`
}

// ServerErrorBody is the backend's generic error response shape. Error
// responses are never encrypted, even when payload encryption is on.
type ServerErrorBody struct {
	Resultado string `json:"resultado"`
	Mensaje   string `json:"mensaje"`
	Detalle   string `json:"detalle,omitempty"`
}

// IsError reports whether the body matches the backend's error marker.
func (b ServerErrorBody) IsError() bool {
	return b.Resultado == "error"
}
