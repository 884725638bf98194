package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEncryptPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ProducesWireBody", func(t *testing.T) {
		setBaseEnv(t)

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader(`{"username":"alice"}`), Writer: &out}
		require.NoError(t, RunEncryptPayload(ctx, io))

		var wire struct {
			EncryptedPayload string `json:"encryptedPayload"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &wire))
		assert.NotEmpty(t, wire.EncryptedPayload)
	})

	t.Run("Success_PassThroughWhenDisabled", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("PAYLOAD_ENCRYPTION_ENABLED", "false")

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader(`{"username":"alice"}`), Writer: &out}
		require.NoError(t, RunEncryptPayload(ctx, io))

		assert.JSONEq(t, `{"username":"alice"}`, out.String())
	})

	t.Run("Error_InvalidJSONInput", func(t *testing.T) {
		setBaseEnv(t)

		io := IOTuple{Reader: strings.NewReader(`not json`)}
		err := RunEncryptPayload(ctx, io)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})
}

func TestRunDecryptPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		setBaseEnv(t)

		var sealed bytes.Buffer
		encIO := IOTuple{Reader: strings.NewReader(`{"token":"abc","expires":42}`), Writer: &sealed}
		require.NoError(t, RunEncryptPayload(ctx, encIO))

		var opened bytes.Buffer
		decIO := IOTuple{Reader: bytes.NewReader(sealed.Bytes()), Writer: &opened}
		require.NoError(t, RunDecryptPayload(ctx, decIO))

		assert.JSONEq(t, `{"token":"abc","expires":42}`, opened.String())
	})

	t.Run("Success_PlainJSONFallback", func(t *testing.T) {
		setBaseEnv(t)

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader(`{"status":"ok"}`), Writer: &out}
		require.NoError(t, RunDecryptPayload(ctx, io))

		assert.JSONEq(t, `{"status":"ok"}`, out.String())
	})

	t.Run("Error_ServerReportedError", func(t *testing.T) {
		setBaseEnv(t)

		body := `{"resultado":"error","mensaje":"invalid credentials"}`
		io := IOTuple{Reader: strings.NewReader(body)}
		err := RunDecryptPayload(ctx, io)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server reported an error")
	})

	t.Run("Error_TamperedEnvelope", func(t *testing.T) {
		setBaseEnv(t)

		var sealed bytes.Buffer
		encIO := IOTuple{Reader: strings.NewReader(`{"token":"abc"}`), Writer: &sealed}
		require.NoError(t, RunEncryptPayload(ctx, encIO))

		var wire struct {
			EncryptedPayload string `json:"encryptedPayload"`
		}
		require.NoError(t, json.Unmarshal(sealed.Bytes(), &wire))

		// Swap the envelope for one that fails authentication
		raw := []byte(wire.EncryptedPayload)
		raw[len(raw)-5] ^= 0x01
		tampered, err := json.Marshal(map[string]string{"encryptedPayload": string(raw)})
		require.NoError(t, err)

		io := IOTuple{Reader: bytes.NewReader(tampered)}
		err = RunDecryptPayload(ctx, io)
		require.Error(t, err)
	})
}
