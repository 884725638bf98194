package commands

import (
	"context"
	"encoding/json"
	"fmt"
	stdio "io"

	"github.com/allisson/payloadcrypt/internal/app"
)

// RunEncryptPayload reads a JSON payload from the reader, seals it into the
// {"encryptedPayload": ...} wire body, and writes the body to the writer.
// With PAYLOAD_ENCRYPTION_ENABLED=false the payload passes through as plain
// JSON, which is useful for debugging the wire contract.
//
// Requirements: PAYLOAD_SECRET must be set when payload encryption is enabled.
func RunEncryptPayload(ctx context.Context, io IOTuple) error {
	data, err := stdio.ReadAll(io.Reader)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	// Reject malformed input before touching the cipher
	if !json.Valid(data) {
		return fmt.Errorf("input is not valid JSON")
	}

	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	payloadUseCase, err := container.PayloadUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize payload use case: %w", err)
	}

	body, err := payloadUseCase.Encrypt(ctx, json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("failed to encrypt payload: %w", err)
	}

	fmt.Fprintln(io.Writer, string(body))

	return nil
}
