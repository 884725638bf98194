package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// FernetService implements the FernetCodec interface for at-rest config
// secrets.
//
// Tokens follow the layout version(1) || timestamp(8) || iv(16) ||
// ciphertext || hmac(32), base64url-encoded. Decryption is strictly
// verify-then-decrypt: the HMAC over everything before the trailing 32
// bytes is checked in constant time before any cipher work runs. The
// ciphertext itself is AES-128-CBC with PKCS#7 padding, keyed with the
// encryption half of the KeySet.
//
// The service is stateless and safe for concurrent use.
type FernetService struct{}

// NewFernetService creates a new FernetService.
func NewFernetService() *FernetService {
	return &FernetService{}
}

// Decrypt verifies and decrypts a base64url token into its plaintext value.
//
// Error taxonomy:
//   - ErrInvalidFormat: bad base64 or token shorter than 57 bytes
//     (raised before any HMAC or cipher work)
//   - ErrUnsupportedVersion: version byte other than 0x80
//   - ErrIntegrityCheckFailed: HMAC mismatch; the ciphertext is never touched
//   - ErrDecryptionFailed: ciphertext not a positive multiple of the AES
//     block size, or invalid PKCS#7 padding after decryption
//
// The token timestamp is not validated; staleness checks belong to callers.
func (s *FernetService) Decrypt(token string, keys *cryptoDomain.KeySet) (string, error) {
	parsed, err := cryptoDomain.ParseFernetToken(token)
	if err != nil {
		return "", err
	}

	// Verify before decrypt: HMAC-SHA256 over version+timestamp+iv+ciphertext,
	// compared in constant time.
	mac := hmac.New(sha256.New, keys.SigningKey)
	mac.Write(parsed.SignedData())
	if !hmac.Equal(mac.Sum(nil), parsed.HMAC) {
		return "", cryptoDomain.ErrIntegrityCheckFailed
	}

	if len(parsed.Ciphertext) == 0 || len(parsed.Ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf(
			"%w: ciphertext length %d is not a positive multiple of the block size",
			cryptoDomain.ErrDecryptionFailed, len(parsed.Ciphertext),
		)
	}

	block, err := aes.NewCipher(keys.EncryptionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}

	plaintext := make([]byte, len(parsed.Ciphertext))
	cipher.NewCBCDecrypter(block, parsed.IV).CryptBlocks(plaintext, parsed.Ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

// Encrypt produces a token for the given plaintext.
//
// This is the provisioning side of the codec: the client only consumes
// tokens, but the tool that mints the ENC(...) config values and the tests
// need to create them. A fresh random IV and the current UTC time are used
// for every call.
func (s *FernetService) Encrypt(plaintext string, keys *cryptoDomain.KeySet) (string, error) {
	iv := make([]byte, cryptoDomain.FernetIVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	block, err := aes.NewCipher(keys.EncryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext))
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	signed := make([]byte, 0, 1+cryptoDomain.FernetTimestampSize+len(iv)+len(ciphertext))
	signed = append(signed, cryptoDomain.FernetVersion)
	signed = binary.BigEndian.AppendUint64(signed, uint64(time.Now().UTC().Unix()))
	signed = append(signed, iv...)
	signed = append(signed, ciphertext...)

	mac := hmac.New(sha256.New, keys.SigningKey)
	mac.Write(signed)

	return cryptoDomain.EncodeBase64URL(mac.Sum(signed)), nil
}

// pkcs7Pad pads data to a whole number of AES blocks. A full padding block
// is appended when the input is already block-aligned.
func pkcs7Pad(data []byte) []byte {
	padLen := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad validates and strips PKCS#7 padding.
// Returns ErrDecryptionFailed on any malformed padding.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length %d", cryptoDomain.ErrDecryptionFailed, len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize {
		return nil, fmt.Errorf("%w: invalid padding", cryptoDomain.ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: invalid padding", cryptoDomain.ErrDecryptionFailed)
		}
	}

	return data[:len(data)-padLen], nil
}
