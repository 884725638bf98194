package commands

import (
	"context"
	"fmt"

	"github.com/allisson/payloadcrypt/internal/app"
)

// RunUnwrapSecret decrypts an ENC(<token>) config value back to its plaintext
// secret. A value without the ENC(...) wrapper is printed unchanged.
//
// Requirements: CONFIG_MASTER_KEY must be set (and KMS variables in KMS mode).
func RunUnwrapSecret(ctx context.Context, value string, io IOTuple) error {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	configSecretUseCase, err := container.ConfigSecretUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize config secret use case: %w", err)
	}

	plaintext, err := configSecretUseCase.Unwrap(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to unwrap secret: %w", err)
	}

	fmt.Fprintln(io.Writer, plaintext)

	return nil
}
