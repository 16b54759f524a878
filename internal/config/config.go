package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const redacted = "<redacted>"

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"development"`

	// Host and Port may also be given without the MAW_ prefix
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port uint16 `envconfig:"PORT" default:"8000"`

	// Token is the long-lived myday identity credential, DeviceCode the secret it is paired with
	Token      string `envconfig:"TOKEN" required:"true"`
	DeviceCode string `envconfig:"DEVICE_CODE" required:"true"`

	UpstreamTimeout time.Duration     `split_words:"true" default:"30s"`
	AllowedOrigins  []string          `split_words:"true" default:"*"`
	MaxBodySize     datasize.ByteSize `split_words:"true" default:"16KB"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("maw", config); err != nil {
		return nil, err
	}
	if strings.TrimSpace(config.Token) == "" {
		return nil, fmt.Errorf("required key %s missing value", "MAW_TOKEN")
	}
	if strings.TrimSpace(config.DeviceCode) == "" {
		return nil, fmt.Errorf("required key %s missing value", "MAW_DEVICE_CODE")
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in a production environment
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "production") || strings.EqualFold(config.Environment, "prod")
}

// ListenAddress returns the address the gateway API listens on
func (config *Config) ListenAddress() string {
	return net.JoinHostPort(config.Host, strconv.Itoa(int(config.Port)))
}

// String returns a printable representation of the configuration with all secrets redacted
func (config Config) String() string {
	type plain Config
	cpy := plain(config)
	if cpy.Token != "" {
		cpy.Token = redacted
	}
	if cpy.DeviceCode != "" {
		cpy.DeviceCode = redacted
	}
	return fmt.Sprintf("%+v", cpy)
}
