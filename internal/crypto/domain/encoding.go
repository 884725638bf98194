package domain

import (
	"encoding/base64"
	"strings"
)

// EncodeBase64URL encodes bytes as unpadded base64url.
func EncodeBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeBase64URL decodes a base64url string. Padded and unpadded input are
// both accepted, since provisioning tools differ on whether they emit padding.
// Returns ErrInvalidFormat on invalid alphabet characters or corrupt padding.
func DecodeBase64URL(encoded string) ([]byte, error) {
	trimmed := strings.TrimRight(encoded, "=")
	data, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return data, nil
}

// EncodeBase64 encodes bytes as standard padded base64 (envelope wire format).
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a standard base64 string.
// Returns ErrInvalidFormat on invalid input.
func DecodeBase64(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return data, nil
}
