package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MAW_TOKEN", "secret-token")
	t.Setenv("MAW_DEVICE_CODE", "secret-code")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Token)
	assert.Equal(t, "secret-code", cfg.DeviceCode)
	assert.Equal(t, "127.0.0.1:8000", cfg.ListenAddress())
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 16*datasize.KB, cfg.MaxBodySize)
	assert.False(t, cfg.IsEnvProduction())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("MAW_PORT", "9090")
	t.Setenv("MAW_ENVIRONMENT", "production")
	t.Setenv("MAW_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("MAW_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MAW_MAX_BODY_SIZE", "1MB")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress())
	assert.True(t, cfg.IsEnvProduction())
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, datasize.MB, cfg.MaxBodySize)
}

func TestLoadFromEnv_MissingSecrets(t *testing.T) {
	cases := map[string][2]string{
		"missing token":       {"", "secret-code"},
		"missing device code": {"secret-token", ""},
		"blank token":         {"   ", "secret-code"},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("MAW_TOKEN", values[0])
			t.Setenv("MAW_DEVICE_CODE", values[1])
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestConfig_StringRedactsSecrets(t *testing.T) {
	cfg := &Config{Token: "secret-token", DeviceCode: "secret-code", Host: "localhost", Port: 8000}

	for _, printed := range []string{cfg.String(), fmt.Sprintf("%+v", cfg), fmt.Sprint(*cfg)} {
		assert.NotContains(t, printed, "secret-token")
		assert.NotContains(t, printed, "secret-code")
		assert.Contains(t, printed, "localhost")
	}
}
