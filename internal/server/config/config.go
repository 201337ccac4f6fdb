// Package config holds the note authority's runtime settings. Values are
// layered: defaults, then an optional JSON file, then command-line flags.
package config

import (
	"time"

	"github.com/notechain/notechain/internal/timex"
)

type Config struct {
	// Addr is the listen address of the HTTP API.
	Addr string
	// SecretKey signs the bearer tokens issued to interactive clients.
	SecretKey string
	// DataDir holds the note and user snapshots.
	DataDir string
	// TokenValidity bounds how long an issued token stays usable.
	TokenValidity timex.Duration
}

func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:4943"
	c.SecretKey = "notechain-dev-secret"
	c.DataDir = ".notechain-authority"
	c.TokenValidity = timex.Duration{Duration: 7 * 24 * time.Hour}
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
