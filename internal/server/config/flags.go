package config

import (
	"flag"
	"os"

	"github.com/notechain/notechain/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address
//	-k string   token signing key
//	-d string   data directory for the snapshots
//	-t duration token validity, e.g. 168h
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the snapshots")
	validity := fs.Duration("t", cfg.TokenValidity.Duration, "token validity")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidity.Duration = *validity
}
