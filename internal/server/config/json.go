package config

import (
	"encoding/json"
	"os"

	"github.com/notechain/notechain/internal/flagx"
	"github.com/notechain/notechain/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, values are copied into the runtime Config.
type JsonConfig struct {
	Addr          string         `json:"addr"`
	SecretKey     string         `json:"secret_key"`
	DataDir       string         `json:"data_dir"`
	TokenValidity timex.Duration `json:"token_validity"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. If no file was given, nothing happens.
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

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.TokenValidity.Duration != 0 {
		cfg.TokenValidity = jc.TokenValidity
	}
}
