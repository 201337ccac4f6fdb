package config

import (
	"encoding/json"
	"os"

	"github.com/notechain/notechain/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, values are copied into the runtime Config.
type JsonConfig struct {
	AuthorityAddr string `json:"authority_addr"`
	Network       string `json:"network"`
	DataDir       string `json:"data_dir"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. If no file was given, nothing happens.
// Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AuthorityAddr != "" {
		cfg.AuthorityAddr = jc.AuthorityAddr
	}
	if jc.Network != "" {
		cfg.Net = Network(jc.Network)
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
}
