package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/payloadcrypt/internal/crypto/service"
)

// payloadUseCase implements PayloadUseCase on top of the envelope cipher and
// the immutable encryption policy built at startup.
type payloadUseCase struct {
	policy cryptoDomain.EncryptionPolicy
	cipher cryptoService.EnvelopeCipher
}

// NewPayloadUseCase creates the payload use case.
func NewPayloadUseCase(
	policy cryptoDomain.EncryptionPolicy,
	cipher cryptoService.EnvelopeCipher,
) PayloadUseCase {
	return &payloadUseCase{
		policy: policy,
		cipher: cipher,
	}
}

// Encrypt serializes payload and seals it when the policy is enabled.
//
// With the policy disabled the result is byte-for-byte the plain JSON
// serialization of payload, no envelope wrapping.
func (p *payloadUseCase) Encrypt(_ context.Context, payload any) ([]byte, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	if !p.policy.Enabled() {
		return plaintext, nil
	}

	envelope, err := p.cipher.Encrypt([]byte(p.policy.Secret()), plaintext)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(cryptoDomain.WireBody{EncryptedPayload: envelope.Encode()})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize wire body: %w", err)
	}

	return body, nil
}

// Decrypt parses a response body into target.
//
// With the policy disabled the body is parsed directly as the target shape.
// With the policy enabled, three tiers are tried in order:
//
//  1. The encrypted envelope shape {"encryptedPayload": ...}. Once this
//     shape matches, any failure inside it (bad base64, short envelope, tag
//     mismatch) is terminal - an integrity failure never degrades to a
//     plaintext fallback.
//  2. The backend's generic error shape {"resultado":"error", ...}, which is
//     never encrypted; returned as *domain.ServerError.
//  3. Plain JSON: the backend legitimately answers a subset of endpoints
//     unencrypted even when the global flag is on.
func (p *payloadUseCase) Decrypt(_ context.Context, body []byte, target any) error {
	if !p.policy.Enabled() {
		return unmarshalTarget(body, target)
	}

	var wire cryptoDomain.WireBody
	if err := json.Unmarshal(body, &wire); err == nil && wire.EncryptedPayload != "" {
		envelope, err := cryptoDomain.DecodeEnvelope(wire.EncryptedPayload)
		if err != nil {
			return err
		}

		plaintext, err := p.cipher.Decrypt([]byte(p.policy.Secret()), envelope)
		if err != nil {
			return err
		}

		return unmarshalTarget(plaintext, target)
	}

	var serverErr cryptoDomain.ServerErrorBody
	if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.IsError() {
		return &cryptoDomain.ServerError{
			Message: serverErr.Mensaje,
			Detail:  serverErr.Detalle,
		}
	}

	return unmarshalTarget(body, target)
}

// unmarshalTarget parses JSON bytes into target, mapping parse failures to
// the format error. Unknown fields are tolerated: backend responses may
// carry extra fields the client does not model.
func unmarshalTarget(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidFormat, err)
	}
	return nil
}
