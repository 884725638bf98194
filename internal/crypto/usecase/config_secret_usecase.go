package usecase

import (
	"context"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/payloadcrypt/internal/crypto/service"
)

const (
	wrapPrefix = "ENC("
	wrapSuffix = ")"
)

// configSecretUseCase implements ConfigSecretUseCase on top of the fernet
// codec and the process key set.
//
// The key set is owned by this use case for its lifetime; nothing else
// aliases it.
type configSecretUseCase struct {
	fernet cryptoService.FernetCodec
	keys   *cryptoDomain.KeySet
}

// NewConfigSecretUseCase creates the config secret use case.
func NewConfigSecretUseCase(
	fernet cryptoService.FernetCodec,
	keys *cryptoDomain.KeySet,
) ConfigSecretUseCase {
	return &configSecretUseCase{
		fernet: fernet,
		keys:   keys,
	}
}

// IsWrapped reports whether value starts with "ENC(" and ends with ")".
func (c *configSecretUseCase) IsWrapped(value string) bool {
	return strings.HasPrefix(value, wrapPrefix) && strings.HasSuffix(value, wrapSuffix)
}

// Unwrap returns the plaintext for a wrapped config value.
//
// Unwrapped input is returned unchanged. For wrapped input any decryption
// failure propagates to the caller: silently returning the wrapped string
// would hide a wrong master key or a corrupt token until much later, at the
// first backend call that uses the secret.
func (c *configSecretUseCase) Unwrap(_ context.Context, value string) (string, error) {
	if !c.IsWrapped(value) {
		return value, nil
	}

	token := value[len(wrapPrefix) : len(value)-len(wrapSuffix)]
	plaintext, err := c.fernet.Decrypt(token, c.keys)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap config secret: %w", err)
	}

	return plaintext, nil
}

// Wrap encrypts a plaintext secret into its ENC(<token>) config form.
func (c *configSecretUseCase) Wrap(_ context.Context, value string) (string, error) {
	token, err := c.fernet.Encrypt(value, c.keys)
	if err != nil {
		return "", fmt.Errorf("failed to wrap config secret: %w", err)
	}

	return wrapPrefix + token + wrapSuffix, nil
}
