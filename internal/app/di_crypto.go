package app

import (
	"context"
	"fmt"
	"sync"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/payloadcrypt/internal/crypto/service"
	cryptoUseCase "github.com/allisson/payloadcrypt/internal/crypto/usecase"
)

// cryptoComponents groups the crypto wiring held by the container.
type cryptoComponents struct {
	kmsService          cryptoService.KMSService
	keySet              *cryptoDomain.KeySet
	fernetService       cryptoService.FernetCodec
	configSecretUseCase cryptoUseCase.ConfigSecretUseCase
	keyDeriver          cryptoService.KeyDeriver
	envelopeCipher      cryptoService.EnvelopeCipher
	payloadUseCase      cryptoUseCase.PayloadUseCase
	apiKey              string

	kmsServiceInit          sync.Once
	keySetInit              sync.Once
	fernetServiceInit       sync.Once
	configSecretUseCaseInit sync.Once
	keyDeriverInit          sync.Once
	envelopeCipherInit      sync.Once
	payloadUseCaseInit      sync.Once
	apiKeyInit              sync.Once
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.crypto.kmsServiceInit.Do(func() {
		c.crypto.kmsService = cryptoService.NewKMSService()
	})
	return c.crypto.kmsService
}

// KeySet returns the config master key set loaded from the environment.
func (c *Container) KeySet() (*cryptoDomain.KeySet, error) {
	var err error
	c.crypto.keySetInit.Do(func() {
		c.crypto.keySet, err = c.initKeySet()
		if err != nil {
			c.initErrors["keySet"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySet"]; exists {
		return nil, storedErr
	}
	return c.crypto.keySet, nil
}

// FernetService returns the fernet token codec.
func (c *Container) FernetService() cryptoService.FernetCodec {
	c.crypto.fernetServiceInit.Do(func() {
		c.crypto.fernetService = cryptoService.NewFernetService()
	})
	return c.crypto.fernetService
}

// ConfigSecretUseCase returns the config secret use case.
func (c *Container) ConfigSecretUseCase() (cryptoUseCase.ConfigSecretUseCase, error) {
	var err error
	c.crypto.configSecretUseCaseInit.Do(func() {
		c.crypto.configSecretUseCase, err = c.initConfigSecretUseCase()
		if err != nil {
			c.initErrors["configSecretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configSecretUseCase"]; exists {
		return nil, storedErr
	}
	return c.crypto.configSecretUseCase, nil
}

// KeyDeriver returns the envelope key deriver selected by configuration.
func (c *Container) KeyDeriver() (cryptoService.KeyDeriver, error) {
	var err error
	c.crypto.keyDeriverInit.Do(func() {
		c.crypto.keyDeriver, err = cryptoService.NewKeyDeriver(cryptoDomain.KDFStrategy(c.config.PayloadKDF))
		if err != nil {
			c.initErrors["keyDeriver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyDeriver"]; exists {
		return nil, storedErr
	}
	return c.crypto.keyDeriver, nil
}

// EnvelopeCipher returns the payload envelope cipher.
func (c *Container) EnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	var err error
	c.crypto.envelopeCipherInit.Do(func() {
		c.crypto.envelopeCipher, err = c.initEnvelopeCipher()
		if err != nil {
			c.initErrors["envelopeCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCipher"]; exists {
		return nil, storedErr
	}
	return c.crypto.envelopeCipher, nil
}

// PayloadUseCase returns the payload use case.
func (c *Container) PayloadUseCase() (cryptoUseCase.PayloadUseCase, error) {
	var err error
	c.crypto.payloadUseCaseInit.Do(func() {
		c.crypto.payloadUseCase, err = c.initPayloadUseCase()
		if err != nil {
			c.initErrors["payloadUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["payloadUseCase"]; exists {
		return nil, storedErr
	}
	return c.crypto.payloadUseCase, nil
}

// APIKey returns the backend API key with any ENC(...) wrapper removed.
func (c *Container) APIKey() (string, error) {
	var err error
	c.crypto.apiKeyInit.Do(func() {
		c.crypto.apiKey, err = c.initAPIKey()
		if err != nil {
			c.initErrors["apiKey"] = err
		}
	})
	if err != nil {
		return "", err
	}
	if storedErr, exists := c.initErrors["apiKey"]; exists {
		return "", storedErr
	}
	return c.crypto.apiKey, nil
}

// initKeySet loads the master key set, unwrapping it through KMS when configured.
func (c *Container) initKeySet() (*cryptoDomain.KeySet, error) {
	keySet, err := cryptoDomain.LoadKeySet(
		context.Background(),
		c.config,
		c.KMSService(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key set: %w", err)
	}
	return keySet, nil
}

// initConfigSecretUseCase creates the config secret use case with all its dependencies.
func (c *Container) initConfigSecretUseCase() (cryptoUseCase.ConfigSecretUseCase, error) {
	keySet, err := c.KeySet()
	if err != nil {
		return nil, fmt.Errorf("failed to get key set for config secret use case: %w", err)
	}

	baseUseCase := cryptoUseCase.NewConfigSecretUseCase(c.FernetService(), keySet)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for config secret use case: %w", err)
		}
		return cryptoUseCase.NewConfigSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEnvelopeCipher creates the envelope cipher with the configured key deriver.
func (c *Container) initEnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	deriver, err := c.KeyDeriver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key deriver for envelope cipher: %w", err)
	}
	return cryptoService.NewEnvelopeCipher(deriver), nil
}

// initPayloadUseCase creates the payload use case with all its dependencies.
//
// The payload secret may itself ship wrapped as ENC(<token>); it is unwrapped
// through the config secret use case before the policy is built.
func (c *Container) initPayloadUseCase() (cryptoUseCase.PayloadUseCase, error) {
	cipher, err := c.EnvelopeCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope cipher for payload use case: %w", err)
	}

	secret := c.config.PayloadSecret
	if c.config.PayloadEncryptionEnabled {
		configSecretUseCase, err := c.ConfigSecretUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get config secret use case for payload use case: %w", err)
		}

		secret, err = configSecretUseCase.Unwrap(context.Background(), secret)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap payload secret: %w", err)
		}
	}

	policy := cryptoDomain.NewEncryptionPolicy(c.config.PayloadEncryptionEnabled, secret)
	baseUseCase := cryptoUseCase.NewPayloadUseCase(policy, cipher)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for payload use case: %w", err)
		}
		return cryptoUseCase.NewPayloadUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAPIKey unwraps the configured API key.
func (c *Container) initAPIKey() (string, error) {
	configSecretUseCase, err := c.ConfigSecretUseCase()
	if err != nil {
		return "", fmt.Errorf("failed to get config secret use case for api key: %w", err)
	}

	apiKey, err := configSecretUseCase.Unwrap(context.Background(), c.config.APIKey)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap api key: %w", err)
	}

	return apiKey, nil
}
