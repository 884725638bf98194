package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/payloadcrypt/internal/config"
)

// KeySet holds the two halves of the decoded 32-byte config master key.
//
// Bytes 0-15 are the HMAC-SHA256 signing key and bytes 16-31 are the
// AES-128-CBC encryption key, matching the token format the provisioning
// tool produces. The key set is owned exclusively by the codec that receives
// it; call Close when it is no longer needed.
type KeySet struct {
	SigningKey    []byte
	EncryptionKey []byte
}

// NewKeySet builds a KeySet from raw master key material.
//
// The master key must be exactly 32 bytes. The halves are copied, so the
// caller may zero its own buffer afterwards.
//
// Returns ErrInvalidKeySize if the key is not 32 bytes.
func NewKeySet(masterKey []byte) (*KeySet, error) {
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d",
			ErrInvalidKeySize, MasterKeySize, len(masterKey))
	}

	signing := make([]byte, SigningKeySize)
	encryption := make([]byte, EncryptionKeySize)
	copy(signing, masterKey[:SigningKeySize])
	copy(encryption, masterKey[SigningKeySize:])

	return &KeySet{SigningKey: signing, EncryptionKey: encryption}, nil
}

// ParseKeySet decodes a base64url-encoded master key and splits it into a KeySet.
// The temporary decoded buffer is zeroed before returning.
func ParseKeySet(encoded string) (*KeySet, error) {
	masterKey, err := DecodeBase64URL(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	defer Zero(masterKey)

	return NewKeySet(masterKey)
}

// Close zeroes both key halves. The KeySet must not be used afterwards.
func (k *KeySet) Close() {
	Zero(k.SigningKey)
	Zero(k.EncryptionKey)
	k.SigningKey = nil
	k.EncryptionKey = nil
}

// KMSKeeper abstracts the KMS keeper used to unwrap a master key at rest.
// *secrets.Keeper from gocloud.dev implements this interface.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSOpener abstracts opening a KMS keeper for a key URI.
type KMSOpener interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// LoadKeySet loads the config master key from configuration and splits it
// into signing and encryption halves.
//
// Two modes, selected by configuration:
//   - Plain mode (KMS_KEY_URI unset): CONFIG_MASTER_KEY is the
//     base64url-encoded 32-byte master key.
//   - KMS mode (KMS_KEY_URI set): CONFIG_MASTER_KEY is the standard-base64
//     KMS ciphertext of the master key, unwrapped through the opener at
//     startup. Temporary plaintext buffers are zeroed after the split.
//
// The key set is loaded once at process start; fail-fast on any error.
func LoadKeySet(
	ctx context.Context,
	cfg *config.Config,
	opener KMSOpener,
	logger *slog.Logger,
) (*KeySet, error) {
	if cfg.KMSKeyURI == "" {
		return ParseKeySet(cfg.ConfigMasterKey)
	}

	logger.Info("unwrapping config master key with KMS", slog.String("kms_provider", cfg.KMSProvider))

	ciphertext, err := DecodeBase64(cfg.ConfigMasterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode KMS ciphertext: %w", err)
	}

	keeper, err := opener.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	masterKey, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt master key with KMS: %w", err)
	}
	defer Zero(masterKey)

	return NewKeySet(masterKey)
}
