package mpesa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingCredentials(t *testing.T) {
	t.Setenv("MPESA_CONSUMER_KEY", "")
	t.Setenv("MPESA_CONSUMER_SECRET", "secret")
	t.Setenv("MPESA_PASSKEY", "")
	t.Setenv("MPESA_CALLBACK_URL", "https://example.com/mpesa/callback")
	t.Setenv("MPESA_ENVIRONMENT", "sandbox")

	_, err := LoadConfig()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"MPESA_CONSUMER_KEY", "MPESA_PASSKEY"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "MPESA_CONSUMER_KEY")
	assert.Contains(t, err.Error(), "MPESA_PASSKEY")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MPESA_CONSUMER_KEY", "key")
	t.Setenv("MPESA_CONSUMER_SECRET", "secret")
	t.Setenv("MPESA_BUSINESS_SHORT_CODE", "")
	t.Setenv("MPESA_PASSKEY", "abc")
	t.Setenv("MPESA_CALLBACK_URL", "https://example.com/mpesa/callback")
	t.Setenv("MPESA_ENVIRONMENT", "")
	t.Setenv("MPESA_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultShortCode, cfg.ShortCode)
	assert.Equal(t, Sandbox, cfg.Environment)
	assert.Equal(t, "https://sandbox.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials", cfg.AuthURL())
	assert.Equal(t, "https://sandbox.safaricom.co.ke/mpesa/stkpush/v1/processrequest", cfg.STKPushURL())
}

func TestLoadConfigProductionEndpoints(t *testing.T) {
	t.Setenv("MPESA_CONSUMER_KEY", "key")
	t.Setenv("MPESA_CONSUMER_SECRET", "secret")
	t.Setenv("MPESA_PASSKEY", "abc")
	t.Setenv("MPESA_CALLBACK_URL", "https://example.com/mpesa/callback")
	t.Setenv("MPESA_ENVIRONMENT", "production")
	t.Setenv("MPESA_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "https://api.safaricom.co.ke/mpesa/stkpush/v1/processrequest", cfg.STKPushURL())
}

func TestLoadConfigUnknownEnvironment(t *testing.T) {
	t.Setenv("MPESA_CONSUMER_KEY", "key")
	t.Setenv("MPESA_CONSUMER_SECRET", "secret")
	t.Setenv("MPESA_PASSKEY", "abc")
	t.Setenv("MPESA_CALLBACK_URL", "https://example.com/mpesa/callback")
	t.Setenv("MPESA_ENVIRONMENT", "staging")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MPESA_ENVIRONMENT")
}
