package domain

import (
	"encoding/binary"
	"fmt"
	"time"
)

// FernetToken represents a parsed at-rest secret token.
//
// Decoded layout: version(1) || timestamp(8, big-endian) || iv(16) ||
// ciphertext(variable) || hmac(32). Tokens are constructed by the secret
// provisioning tool, embedded in configuration as ENC(<base64url>) values,
// and decoded once per secret lookup.
//
// The timestamp is carried by the format but not validated here; callers
// needing freshness checks must enforce that separately.
type FernetToken struct {
	Version    byte
	Timestamp  time.Time
	IV         []byte
	Ciphertext []byte
	HMAC       []byte

	signed []byte
}

// ParseFernetToken decodes and structurally validates a base64url token.
//
// Validation order mirrors the verify-then-decrypt contract:
//  1. base64url decode (padded or unpadded) - ErrInvalidFormat on failure
//  2. minimum length check (57 bytes) - ErrInvalidFormat, before any
//     HMAC or cipher work is attempted
//  3. version byte must be 0x80 - ErrUnsupportedVersion regardless of
//     whether the HMAC would verify
//
// The HMAC itself is verified by the fernet service, not here; parsing only
// establishes the field boundaries.
func ParseFernetToken(encoded string) (FernetToken, error) {
	raw, err := DecodeBase64URL(encoded)
	if err != nil {
		return FernetToken{}, fmt.Errorf("failed to decode token: %w", err)
	}

	if len(raw) < FernetMinTokenSize {
		return FernetToken{}, fmt.Errorf(
			"%w: token must be at least %d bytes, got %d",
			ErrInvalidFormat, FernetMinTokenSize, len(raw),
		)
	}

	if raw[0] != FernetVersion {
		return FernetToken{}, fmt.Errorf(
			"%w: expected 0x%02x, got 0x%02x",
			ErrUnsupportedVersion, FernetVersion, raw[0],
		)
	}

	ivStart := 1 + FernetTimestampSize
	ctStart := ivStart + FernetIVSize
	hmacStart := len(raw) - FernetHMACSize

	seconds := binary.BigEndian.Uint64(raw[1:ivStart])

	return FernetToken{
		Version:    raw[0],
		Timestamp:  time.Unix(int64(seconds), 0).UTC(),
		IV:         raw[ivStart:ctStart],
		Ciphertext: raw[ctStart:hmacStart],
		HMAC:       raw[hmacStart:],
		signed:     raw[:hmacStart],
	}, nil
}

// SignedData returns the byte prefix covered by the HMAC
// (version + timestamp + IV + ciphertext).
func (t FernetToken) SignedData() []byte {
	return t.signed
}
