package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdio "io"

	"github.com/allisson/payloadcrypt/internal/app"
	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
)

// RunDecryptPayload reads a wire response body from the reader, opens the
// encrypted envelope when present, and writes the plaintext JSON to the
// writer. Server-reported error bodies and plain JSON responses follow the
// same fallback rules as the client codec.
//
// Requirements: PAYLOAD_SECRET must be set when payload encryption is enabled.
func RunDecryptPayload(ctx context.Context, io IOTuple) error {
	body, err := stdio.ReadAll(io.Reader)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
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

	var plaintext json.RawMessage
	if err := payloadUseCase.Decrypt(ctx, body, &plaintext); err != nil {
		var serverErr *cryptoDomain.ServerError
		if errors.As(err, &serverErr) {
			return fmt.Errorf("server reported an error: %s", serverErr.Error())
		}
		return fmt.Errorf("failed to decrypt payload: %w", err)
	}

	fmt.Fprintln(io.Writer, string(plaintext))

	return nil
}
