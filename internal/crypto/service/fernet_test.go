package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// Golden vector produced by the provisioning tool against the published
// master key. Token fields: timestamp 2025-01-01T00:00:00Z, IV 0x01..0x10,
// plaintext "super-secret-api-key".
const (
	goldenMasterKey = "vlKu87oIFmDRvkvPvNlAL7qne6MQzxYvIjWm646hR1Y="
	goldenToken     = "gAAAAABndIWAAQIDBAUGBwgJCgsMDQ4PEB_lle-FXp0_feeIBDuIQbSa5_298IxnlT5eRG9_qqwfKwJYBfA7beVVUa9ECodMX-lMACW7thVF9rA48rYHUUg"
	goldenPlaintext = "super-secret-api-key"
)

func goldenKeySet(t *testing.T) *cryptoDomain.KeySet {
	t.Helper()
	keySet, err := cryptoDomain.ParseKeySet(goldenMasterKey)
	require.NoError(t, err)
	return keySet
}

// tamper decodes the token, applies mutate to the raw bytes, and re-encodes.
func tamper(t *testing.T, token string, mutate func(raw []byte)) string {
	t.Helper()
	raw, err := cryptoDomain.DecodeBase64URL(token)
	require.NoError(t, err)
	mutate(raw)
	return cryptoDomain.EncodeBase64URL(raw)
}

func TestFernetService_Decrypt(t *testing.T) {
	service := NewFernetService()
	keySet := goldenKeySet(t)

	t.Run("golden vector decrypts to published plaintext", func(t *testing.T) {
		plaintext, err := service.Decrypt(goldenToken, keySet)
		require.NoError(t, err)
		assert.Equal(t, goldenPlaintext, plaintext)
	})

	t.Run("padded golden token decrypts identically", func(t *testing.T) {
		plaintext, err := service.Decrypt(goldenToken+"=", keySet)
		require.NoError(t, err)
		assert.Equal(t, goldenPlaintext, plaintext)
	})

	t.Run("invalid base64 fails with format error", func(t *testing.T) {
		_, err := service.Decrypt("!!not-base64!!", keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidFormat)
	})

	t.Run("token shorter than 57 bytes fails with format error", func(t *testing.T) {
		short := tamper(t, goldenToken, func(raw []byte) {})[:40]
		raw, err := cryptoDomain.DecodeBase64URL(short)
		require.NoError(t, err)
		require.Less(t, len(raw), cryptoDomain.FernetMinTokenSize)

		_, err = service.Decrypt(short, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidFormat)
	})

	t.Run("version 0x7F fails regardless of HMAC", func(t *testing.T) {
		token := tamper(t, goldenToken, func(raw []byte) { raw[0] = 0x7f })
		_, err := service.Decrypt(token, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedVersion)
	})

	t.Run("altered timestamp fails integrity check", func(t *testing.T) {
		token := tamper(t, goldenToken, func(raw []byte) { raw[3] ^= 0x01 })
		_, err := service.Decrypt(token, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityCheckFailed)
	})

	t.Run("altered IV fails integrity check", func(t *testing.T) {
		token := tamper(t, goldenToken, func(raw []byte) { raw[10] ^= 0x01 })
		_, err := service.Decrypt(token, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityCheckFailed)
	})

	t.Run("altered ciphertext fails integrity check", func(t *testing.T) {
		token := tamper(t, goldenToken, func(raw []byte) { raw[30] ^= 0x01 })
		_, err := service.Decrypt(token, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityCheckFailed)
	})

	t.Run("altered HMAC fails integrity check", func(t *testing.T) {
		token := tamper(t, goldenToken, func(raw []byte) { raw[len(raw)-1] ^= 0x01 })
		_, err := service.Decrypt(token, keySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityCheckFailed)
	})

	t.Run("wrong master key fails integrity check", func(t *testing.T) {
		otherKey := make([]byte, cryptoDomain.MasterKeySize)
		otherKeySet, err := cryptoDomain.NewKeySet(otherKey)
		require.NoError(t, err)

		_, err = service.Decrypt(goldenToken, otherKeySet)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityCheckFailed)
	})
}

func TestFernetService_RoundTrip(t *testing.T) {
	service := NewFernetService()
	keySet := goldenKeySet(t)

	cases := []string{
		"payload-secret",
		"",
		"exactly 16 bytes",
		"a much longer secret value that spans several AES blocks to exercise padding",
		"unicode: ключ-β",
	}

	for _, plaintext := range cases {
		t.Run("round-trip "+plaintext, func(t *testing.T) {
			token, err := service.Encrypt(plaintext, keySet)
			require.NoError(t, err)

			decrypted, err := service.Decrypt(token, keySet)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		})
	}

	t.Run("fresh IV per call", func(t *testing.T) {
		token1, err := service.Encrypt("same", keySet)
		require.NoError(t, err)
		token2, err := service.Encrypt("same", keySet)
		require.NoError(t, err)
		assert.NotEqual(t, token1, token2)
	})
}

func TestPKCS7(t *testing.T) {
	t.Run("pad always appends and unpads back", func(t *testing.T) {
		for size := 0; size <= 33; size++ {
			data := make([]byte, size)
			padded := pkcs7Pad(data)
			assert.Equal(t, 0, len(padded)%16)
			assert.Greater(t, len(padded), len(data))

			unpadded, err := pkcs7Unpad(padded)
			require.NoError(t, err)
			assert.Equal(t, data, unpadded)
		}
	})

	t.Run("invalid padding values fail", func(t *testing.T) {
		block := make([]byte, 16)
		block[15] = 0x00 // zero padding length is never valid
		_, err := pkcs7Unpad(block)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		block[15] = 0x11 // larger than the block size
		_, err = pkcs7Unpad(block)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		block[15] = 0x03 // inconsistent padding bytes
		block[14] = 0x02
		_, err = pkcs7Unpad(block)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := pkcs7Unpad(nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}
