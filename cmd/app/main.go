// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/payloadcrypt/cmd/app/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "payloadcrypt",
		Usage:   "Payload and config secret cryptography toolbox",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "generate-master-key",
				Usage: "Generate a new master key for config secret wrapping",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kms-provider",
						Value: "",
						Usage: "KMS provider for protecting the key at rest (e.g., gcpkms, awskms)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Value: "",
						Usage: "KMS key URI (e.g., gcpkms://projects/.../cryptoKeys/...)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateMasterKey(
						ctx,
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "wrap-secret",
				Usage: "Encrypt a plaintext secret into its ENC(...) config form",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Plaintext secret to wrap",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunWrapSecret(ctx, cmd.String("value"), commands.DefaultIO())
				},
			},
			{
				Name:  "unwrap-secret",
				Usage: "Decrypt an ENC(...) config value back to plaintext",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Wrapped ENC(...) config value",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunUnwrapSecret(ctx, cmd.String("value"), commands.DefaultIO())
				},
			},
			{
				Name:  "encrypt-payload",
				Usage: "Seal a JSON payload from stdin into an encrypted wire body",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncryptPayload(ctx, commands.DefaultIO())
				},
			},
			{
				Name:  "decrypt-payload",
				Usage: "Open a wire response body from stdin into plaintext JSON",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecryptPayload(ctx, commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
