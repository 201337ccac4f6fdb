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
//	-a string   address of the note authority (default from Config)
//	-n string   network mode: local | production
//	-d string   data directory for the local store
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-n", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.AuthorityAddr, "a", cfg.AuthorityAddr, "address of the note authority")
	network := fs.String("n", string(cfg.Net), "network mode: local | production")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the local store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Net = Network(*network)
}
