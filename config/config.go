package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort      uint16 `envconfig:"REHAB_HTTP_SERVER_PORT" default:"8080" required:"true"`
	ServerTimeout int    `envconfig:"REHAB_HTTP_SERVER_TIMEOUT_SECONDS" default:"20"`
	AllowSignup   bool   `envconfig:"REHAB_ALLOW_SIGNUP" default:"true"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}
