package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ClientAdapter holds the settings of the CLI's REST client.
type ClientAdapter struct {
	// BaseURL is the root URL of the server, e.g. "http://localhost:5000".
	BaseURL string `env:"URL" envDefault:"http://localhost:5000"`
	// RequestTimeout is the timeout of every outbound request.
	RequestTimeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// ClientConfig is the configuration of the admin CLI.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"LEDGER_"`

	// AdminPassword is exchanged for an admin token before privileged
	// commands.
	AdminPassword string `env:"LEDGER_ADMIN_PASSWORD"`
}

// GetClientConfig builds the admin CLI configuration from LEDGER_* environment
// variables overridden by the leading flags of args. It returns the
// remaining, non-flag arguments (the command and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("drink-ledger-cli", flag.ContinueOnError)
	fs.StringVar(&cfg.Adapter.BaseURL, "url", cfg.Adapter.BaseURL, "Server base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "timeout", cfg.Adapter.RequestTimeout, "Request timeout")
	fs.StringVar(&cfg.AdminPassword, "password", cfg.AdminPassword, "Administrator password")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, fs.Args(), cfg.validate()
}
