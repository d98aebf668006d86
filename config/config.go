// Package config loads the SOROBAN_* environment and builds the process logger.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/marwen-abid/stellar-identity-go/network"
)

// Store backends selectable through SOROBAN_STORE.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Config contains all environment configuration.
type Config struct {
	RPCURL            string        `envconfig:"SOROBAN_RPC_URL"`
	NetworkPassphrase string        `envconfig:"SOROBAN_NETWORK_PASSPHRASE"`
	Network           string        `envconfig:"SOROBAN_NETWORK"`
	ConfigHome        string        `envconfig:"SOROBAN_CONFIG_HOME"`
	Store             string        `envconfig:"SOROBAN_STORE" default:"file"`
	LogLevel          string        `envconfig:"SOROBAN_LOG_LEVEL" default:"info"`
	FundingTimeout    time.Duration `envconfig:"SOROBAN_FUNDING_TIMEOUT" default:"30s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	switch cfg.Store {
	case StoreFile, StoreBadger:
	default:
		return nil, fmt.Errorf("SOROBAN_STORE must be %q or %q, got %q", StoreFile, StoreBadger, cfg.Store)
	}
	return cfg, nil
}

// NetworkArgs returns the network input with non-empty flag values taking
// precedence over the environment, field by field.
func (c *Config) NetworkArgs(flags network.Args) network.Args {
	out := network.Args{
		RPCURL:            c.RPCURL,
		NetworkPassphrase: c.NetworkPassphrase,
		Network:           c.Network,
	}
	if flags.RPCURL != "" {
		out.RPCURL = flags.RPCURL
	}
	if flags.NetworkPassphrase != "" {
		out.NetworkPassphrase = flags.NetworkPassphrase
	}
	if flags.Network != "" {
		out.Network = flags.Network
	}
	return out
}

// NewLogger returns a logger at level, which is any logrus level name.
func NewLogger(level string) (*log.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := log.New()
	l.SetLevel(lvl)
	return l, nil
}
