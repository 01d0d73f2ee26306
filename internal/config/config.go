package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App    App    `yaml:"app"`
	HTTP   HTTP   `yaml:"http"`
	Log    Log    `yaml:"log"`
	Queue  Queue  `yaml:"queue"`
	Clover Clover `yaml:"clover"`
	Poll   Poll   `yaml:"poll"`
	Redis  Redis  `yaml:"redis"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"clover-trigger-bridge"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Queue struct {
	// "change-me" is an insecure placeholder; deployments must override it.
	Secret string `yaml:"secret" env:"QUEUE_SECRET" env-default:"change-me"`
}

type Clover struct {
	// Empty client id disables the OAuth/active-poll path entirely;
	// webhook intake and dequeue keep working on their own.
	ClientID     string `yaml:"client_id" env:"CLOVER_CLIENT_ID" env-default:""`
	ClientSecret string `yaml:"client_secret" env:"CLOVER_CLIENT_SECRET" env-default:"change-me"`
	BaseURL      string `yaml:"base_url" env:"CLOVER_BASE_URL" env-default:"https://api.clover.com"`
	TokenURL     string `yaml:"token_url" env:"CLOVER_TOKEN_URL" env-default:"https://www.clover.com/oauth/token"`
}

type Poll struct {
	Interval time.Duration `yaml:"interval" env:"POLL_INTERVAL" env-default:"15s"`
}

type Redis struct {
	// Empty address disables the webhook idempotency guard.
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:""`
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}

// PollEnabled reports whether the OAuth/active-poll feature is configured.
func (c *Config) PollEnabled() bool {
	return c.Clover.ClientID != ""
}
