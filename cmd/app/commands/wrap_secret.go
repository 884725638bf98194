package commands

import (
	"context"
	"fmt"

	"github.com/allisson/payloadcrypt/internal/app"
)

// RunWrapSecret encrypts a plaintext secret into its ENC(<token>) config form
// using the configured master key.
//
// Requirements: CONFIG_MASTER_KEY must be set (and KMS variables in KMS mode).
func RunWrapSecret(ctx context.Context, value string, io IOTuple) error {
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

	wrapped, err := configSecretUseCase.Wrap(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to wrap secret: %w", err)
	}

	fmt.Fprintln(io.Writer, wrapped)

	return nil
}
