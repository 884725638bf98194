package commands

import (
	"context"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/payloadcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/payloadcrypt/internal/crypto/service"
)

// RunGenerateMasterKey generates a cryptographically secure 32-byte master key
// for unwrapping ENC(...) config secrets. Key material is zeroed from memory
// after encoding.
//
// Without KMS parameters the key is printed base64url-encoded, ready for
// CONFIG_MASTER_KEY. With kmsProvider and kmsKeyURI set, the key is encrypted
// with KMS before output and CONFIG_MASTER_KEY carries the base64 ciphertext
// instead.
//
// Security: Never use the localsecrets provider in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunGenerateMasterKey(ctx context.Context, kmsProvider, kmsKeyURI string, io IOTuple) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf(
			"--kms-provider and --kms-key-uri must be set together\n\nFor local development, use:\n  --kms-provider=localsecrets --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
		)
	}

	// Generate a cryptographically secure 32-byte master key
	masterKey := make([]byte, cryptoDomain.MasterKeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsProvider == "" {
		fmt.Fprintln(io.Writer, "# Master Key Configuration (Plain Mode)")
		fmt.Fprintln(io.Writer, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(io.Writer)
		fmt.Fprintf(io.Writer, "CONFIG_MASTER_KEY=\"%s\"\n", cryptoDomain.EncodeBase64URL(masterKey))
		return nil
	}

	// Encrypt the master key with KMS before output
	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			fmt.Fprintf(io.Writer, "Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// Type assert to get Encrypt method (needed for encryption)
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	fmt.Fprintln(io.Writer, "# Master Key Configuration (KMS Mode)")
	fmt.Fprintln(io.Writer, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(io.Writer)
	fmt.Fprintf(io.Writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	fmt.Fprintf(io.Writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(io.Writer, "CONFIG_MASTER_KEY=\"%s\"\n", cryptoDomain.EncodeBase64(ciphertext))

	return nil
}
