package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	assert.NoError(t, Validate(&Config{Block: d.Block, Key: d.Key}))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		d := Defaults()
		return &Config{Block: d.Block, Key: d.Key}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero plain width", func(c *Config) { c.Block.PlainWidth = 0 }},
		{"plain width beyond one byte", func(c *Config) { c.Block.PlainWidth = 256 }},
		{"cipher width below padded width", func(c *Config) { c.Block.CipherWidth = 15 }},
		{"tiny key", func(c *Config) { c.Key.Bits = 32 }},
		{"even exponent", func(c *Config) { c.Key.PublicExponent = 65536 }},
		{"exponent one", func(c *Config) { c.Key.PublicExponent = 1 }},
		{"modulus wider than cipher block", func(c *Config) { c.Key.Bits = 264 }},
		{"padded block reaches modulus", func(c *Config) { c.Key.Bits = 128 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
