package usecase

import (
	"context"
	"time"

	"github.com/allisson/payloadcrypt/internal/metrics"
)

// payloadUseCaseWithMetrics decorates PayloadUseCase with metrics instrumentation.
type payloadUseCaseWithMetrics struct {
	next    PayloadUseCase
	metrics metrics.BusinessMetrics
}

// NewPayloadUseCaseWithMetrics wraps a PayloadUseCase with metrics recording.
func NewPayloadUseCaseWithMetrics(useCase PayloadUseCase, m metrics.BusinessMetrics) PayloadUseCase {
	return &payloadUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for payload encryption operations.
func (p *payloadUseCaseWithMetrics) Encrypt(ctx context.Context, payload any) ([]byte, error) {
	start := time.Now()
	body, err := p.next.Encrypt(ctx, payload)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "payload", "payload_encrypt", status)
	p.metrics.RecordDuration(ctx, "payload", "payload_encrypt", time.Since(start), status)

	return body, err
}

// Decrypt records metrics for payload decryption operations.
func (p *payloadUseCaseWithMetrics) Decrypt(ctx context.Context, body []byte, target any) error {
	start := time.Now()
	err := p.next.Decrypt(ctx, body, target)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "payload", "payload_decrypt", status)
	p.metrics.RecordDuration(ctx, "payload", "payload_decrypt", time.Since(start), status)

	return err
}

// configSecretUseCaseWithMetrics decorates ConfigSecretUseCase with metrics instrumentation.
type configSecretUseCaseWithMetrics struct {
	next    ConfigSecretUseCase
	metrics metrics.BusinessMetrics
}

// NewConfigSecretUseCaseWithMetrics wraps a ConfigSecretUseCase with metrics recording.
func NewConfigSecretUseCaseWithMetrics(
	useCase ConfigSecretUseCase,
	m metrics.BusinessMetrics,
) ConfigSecretUseCase {
	return &configSecretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// IsWrapped is a pure predicate and records no metrics.
func (c *configSecretUseCaseWithMetrics) IsWrapped(value string) bool {
	return c.next.IsWrapped(value)
}

// Unwrap records metrics for config secret unwrap operations.
func (c *configSecretUseCaseWithMetrics) Unwrap(ctx context.Context, value string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Unwrap(ctx, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "config_secret", "secret_unwrap", status)
	c.metrics.RecordDuration(ctx, "config_secret", "secret_unwrap", time.Since(start), status)

	return plaintext, err
}

// Wrap records metrics for config secret wrap operations.
func (c *configSecretUseCaseWithMetrics) Wrap(ctx context.Context, value string) (string, error) {
	start := time.Now()
	wrapped, err := c.next.Wrap(ctx, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "config_secret", "secret_wrap", status)
	c.metrics.RecordDuration(ctx, "config_secret", "secret_wrap", time.Since(start), status)

	return wrapped, err
}
