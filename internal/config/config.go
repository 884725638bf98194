// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	appvalidation "github.com/allisson/payloadcrypt/internal/validation"
)

// KDF strategy names accepted by PAYLOAD_KDF.
const (
	KDFHMACSHA256   = "hmac-sha256"
	KDFPBKDF2SHA256 = "pbkdf2-sha256"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string

	// ConfigMasterKey is the base64url-encoded 32-byte master key used to
	// unwrap ENC(...) config secrets. When KMSKeyURI is set, this value is
	// instead the base64-encoded KMS ciphertext of that key.
	ConfigMasterKey string

	// APIKey is the backend API key. May ship wrapped as ENC(<token>).
	APIKey string

	// PayloadEncryptionEnabled indicates whether request/response bodies are
	// wrapped in encrypted envelopes.
	PayloadEncryptionEnabled bool
	// PayloadSecret is the master secret for payload envelope key derivation.
	// May ship wrapped as ENC(<token>).
	PayloadSecret string
	// PayloadKDF selects the key derivation strategy applied per envelope.
	// Must match what the backend implements; one strategy per process.
	PayloadKDF string

	// KMSProvider is the KMS provider to use (e.g., "gcpkms", "awskms").
	KMSProvider string
	// KMSKeyURI is the URI for the key that protects ConfigMasterKey at rest.
	KMSKeyURI string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "payloadcrypt"),

		// Config secrets
		ConfigMasterKey: env.GetString("CONFIG_MASTER_KEY", ""),
		APIKey:          env.GetString("API_KEY", ""),

		// Payload encryption
		PayloadEncryptionEnabled: env.GetBool("PAYLOAD_ENCRYPTION_ENABLED", true),
		PayloadSecret:            env.GetString("PAYLOAD_SECRET", ""),
		PayloadKDF:               env.GetString("PAYLOAD_KDF", KDFHMACSHA256),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),
	}
}

// Validate checks the configuration for internally inconsistent or malformed
// values. It is called once at startup before any codec is built.
func (c *Config) Validate() error {
	masterKeyRule := appvalidation.Base64URL
	if c.KMSKeyURI != "" {
		// KMS mode carries the master key as standard-base64 KMS ciphertext.
		masterKeyRule = appvalidation.Base64
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.ConfigMasterKey, validation.Required, appvalidation.NotBlank, masterKeyRule),
		validation.Field(&c.PayloadKDF, validation.Required, validation.In(KDFHMACSHA256, KDFPBKDF2SHA256)),
		validation.Field(&c.PayloadSecret,
			validation.Required.When(c.PayloadEncryptionEnabled).
				Error("is required when payload encryption is enabled"),
		),
	)
	return appvalidation.WrapValidationError(err)
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
