// pkg/config/config.go
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the optional TOML runtime configuration serverfx loads.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Auth    AuthConfig    `toml:"auth"`
}

type ServerConfig struct {
	ListenAddress       string `toml:"listen_address"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `toml:"idle_timeout_seconds"`
	TLSCertificate      string `toml:"tls_certificate"`
	TLSKey              string `toml:"tls_key"`
}

type LogConfig struct {
	BodyLogPaths []string `toml:"body_log_paths"`
}

type MetricsConfig struct {
	Enabled   bool     `toml:"enabled"`
	SkipPaths []string `toml:"skip_paths"`
}

type AuthConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddress:       ":4000",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			IdleTimeoutSeconds:  60,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads and validates path. A missing file is not an error; defaults
// apply, so embedding a config file stays optional.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address required")
	}
	if (c.Server.TLSCertificate == "") != (c.Server.TLSKey == "") {
		return fmt.Errorf("server.tls_certificate and server.tls_key must be set together")
	}
	return nil
}
