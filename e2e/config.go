package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// POKER_SERVER_ADDR points at a running broadcaster, e.g.
	// http://localhost:3001. The suite is skipped when unset.
	ServerAddr string `envconfig:"POKER_SERVER_ADDR"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
