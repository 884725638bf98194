package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESGCM(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("invalid key size", func(t *testing.T) {
		key := make([]byte, 16) // AES-256 requires 32 bytes
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})

	t.Run("invalid key size - too large", func(t *testing.T) {
		key := make([]byte, 64)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestAESGCMCipher_Encrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("encrypt produces ciphertext and 12-byte nonce", func(t *testing.T) {
		plaintext := []byte("Hello, World!")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		assert.NoError(t, err)
		assert.NotNil(t, ciphertext)
		assert.Equal(t, 12, len(nonce))
		assert.Equal(t, len(plaintext)+16, len(ciphertext)) // 16-byte tag appended
	})

	t.Run("encrypt empty plaintext", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte{}, nil)
		assert.NoError(t, err)
		assert.Equal(t, 16, len(ciphertext)) // tag only
		assert.NotNil(t, nonce)
	})

	t.Run("nonce is unique for each encryption", func(t *testing.T) {
		plaintext := []byte("test")

		_, nonce1, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		_, nonce2, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		assert.NotEqual(t, nonce1, nonce2)
	})
}

func TestAESGCMCipher_Decrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("decrypt successfully", func(t *testing.T) {
		plaintext := []byte("Hello, World!")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("decrypt with tampered ciphertext fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("data"), nil)
		require.NoError(t, err)

		ciphertext[0] ^= 0x01
		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("decrypt with wrong key fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("data"), nil)
		require.NoError(t, err)

		otherKey := make([]byte, 32)
		_, err = rand.Read(otherKey)
		require.NoError(t, err)

		otherCipher, err := NewAESGCM(otherKey)
		require.NoError(t, err)

		_, err = otherCipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
	})
}
