package config

// Network selects which authority deployment the client talks to.
type Network string

const (
	NetworkLocal      Network = "local"
	NetworkProduction Network = "production"
)

// Config holds runtime settings for the NoteChain client.
//
// Fields:
//   - AuthorityAddr: base URL of the note authority endpoint.
//   - Net: network mode; "local" keeps the default loopback authority,
//     "production" expects AuthorityAddr to be set explicitly.
//   - DataDir: directory of the durable local store (notes + profile).
type Config struct {
	AuthorityAddr string
	Net           Network
	DataDir       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AuthorityAddr = "http://127.0.0.1:4943"
	c.Net = NetworkLocal
	c.DataDir = ".notechain"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
