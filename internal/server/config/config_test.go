package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:4943", c.Addr)
	assert.Equal(t, ".notechain-authority", c.DataDir)
	assert.Equal(t, 7*24*time.Hour, c.TokenValidity.Duration)
	assert.NotEmpty(t, c.SecretKey)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:4943", cfg.Addr)
}
