package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMasterKey = "vlKu87oIFmDRvkvPvNlAL7qne6MQzxYvIjWm646hR1Y="

// setBaseEnv configures the minimum environment for the commands under test.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_MASTER_KEY", testMasterKey)
	t.Setenv("PAYLOAD_SECRET", "shared-secret")
	t.Setenv("METRICS_ENABLED", "false")
}

func TestRunWrapSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WrapAndUnwrapRoundTrip", func(t *testing.T) {
		setBaseEnv(t)

		var wrapped bytes.Buffer
		err := RunWrapSecret(ctx, "database-password", IOTuple{Writer: &wrapped})
		require.NoError(t, err)

		value := strings.TrimSpace(wrapped.String())
		assert.True(t, strings.HasPrefix(value, "ENC("))
		assert.True(t, strings.HasSuffix(value, ")"))

		var plaintext bytes.Buffer
		err = RunUnwrapSecret(ctx, value, IOTuple{Writer: &plaintext})
		require.NoError(t, err)
		assert.Equal(t, "database-password", strings.TrimSpace(plaintext.String()))
	})

	t.Run("Error_MissingMasterKey", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CONFIG_MASTER_KEY", "")

		err := RunWrapSecret(ctx, "database-password", IOTuple{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestRunUnwrapSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PlainValuePassesThrough", func(t *testing.T) {
		setBaseEnv(t)

		var out bytes.Buffer
		err := RunUnwrapSecret(ctx, "plain-value", IOTuple{Writer: &out})
		require.NoError(t, err)
		assert.Equal(t, "plain-value", strings.TrimSpace(out.String()))
	})

	t.Run("Error_CorruptToken", func(t *testing.T) {
		setBaseEnv(t)

		err := RunUnwrapSecret(ctx, "ENC(garbage)", IOTuple{})
		require.Error(t, err)
	})
}
