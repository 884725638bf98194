package domain

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestParseEnvelope(t *testing.T) {
	t.Run("valid envelope splits fields", func(t *testing.T) {
		salt := randomBytes(t, SaltSize)
		nonce := randomBytes(t, NonceSize)
		ciphertext := randomBytes(t, 48+TagSize)

		raw := append(append(append([]byte{}, salt...), nonce...), ciphertext...)
		env, err := ParseEnvelope(raw)
		require.NoError(t, err)

		assert.Equal(t, salt, env.Salt)
		assert.Equal(t, nonce, env.Nonce)
		assert.Equal(t, ciphertext, env.Ciphertext)
	})

	t.Run("too short fails with format error", func(t *testing.T) {
		_, err := ParseEnvelope(make([]byte, SaltSize+NonceSize+TagSize-1))
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("empty plaintext envelope is valid", func(t *testing.T) {
		// GCM of an empty plaintext still produces a 16-byte tag.
		_, err := ParseEnvelope(make([]byte, SaltSize+NonceSize+TagSize))
		assert.NoError(t, err)
	})
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope{
		Salt:       randomBytes(t, SaltSize),
		Nonce:      randomBytes(t, NonceSize),
		Ciphertext: randomBytes(t, 64),
	}

	t.Run("bytes round-trip", func(t *testing.T) {
		parsed, err := ParseEnvelope(env.Bytes())
		require.NoError(t, err)
		assert.Equal(t, env, parsed)
	})

	t.Run("base64 round-trip", func(t *testing.T) {
		parsed, err := DecodeEnvelope(env.Encode())
		require.NoError(t, err)
		assert.Equal(t, env, parsed)
	})

	t.Run("invalid base64 fails", func(t *testing.T) {
		_, err := DecodeEnvelope("%%%")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestServerErrorBody(t *testing.T) {
	assert.True(t, ServerErrorBody{Resultado: "error", Mensaje: "boom"}.IsError())
	assert.False(t, ServerErrorBody{Resultado: "ok"}.IsError())
}
