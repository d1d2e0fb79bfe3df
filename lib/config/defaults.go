package config

import (
	"strings"

	"github.com/go-i2p/logger"
)

// ConfigDefaults contains all default configuration values.
type ConfigDefaults struct {
	Block BlockConfig
	Key   KeyConfig
}

// Defaults returns the compiled default configuration.
//
// PlainWidth 15 gives a 16-byte padded block whose integer value is below
// 2^128, always smaller than a 256-bit modulus. CipherWidth 32 holds any
// value below a 256-bit modulus.
func Defaults() ConfigDefaults {
	return ConfigDefaults{
		Block: BlockConfig{
			PlainWidth:  15,
			CipherWidth: 32,
		},
		Key: KeyConfig{
			Bits:           256,
			PublicExponent: 65537,
		},
	}
}

const (
	// maxPlainWidth keeps the length prefix inside one byte
	maxPlainWidth = 255
	minKeyBits    = 64
)

// Validate checks that a configuration is internally consistent.
func Validate(cfg *Config) error {
	var problems []string
	for _, check := range []func(*Config) string{
		validateBlock,
		validateKey,
		validateFit,
	} {
		if msg := check(cfg); msg != "" {
			problems = append(problems, msg)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	log.WithFields(logger.Fields{
		"at":       "Validate",
		"problems": problems,
	}).Warn("configuration rejected")
	return newValidationError(strings.Join(problems, "; "))
}

func validateBlock(cfg *Config) string {
	if cfg.Block.PlainWidth < 1 || cfg.Block.PlainWidth > maxPlainWidth {
		return "block.plain_width must be between 1 and 255"
	}
	if cfg.Block.CipherWidth < cfg.Block.PaddedWidth() {
		return "block.cipher_width must be at least block.plain_width+1"
	}
	return ""
}

func validateKey(cfg *Config) string {
	if cfg.Key.Bits < minKeyBits {
		return "key.bits must be at least 64"
	}
	if cfg.Key.PublicExponent < 3 || cfg.Key.PublicExponent%2 == 0 {
		return "key.public_exponent must be odd and at least 3"
	}
	return ""
}

// validateFit checks that every padded block is below the smallest modulus
// of key.bits bits, and that the largest such modulus fits a cipher block.
func validateFit(cfg *Config) string {
	if 8*cfg.Block.PaddedWidth() > cfg.Key.Bits-1 {
		return "padded block does not fit below a key.bits modulus"
	}
	if 8*cfg.Block.CipherWidth < cfg.Key.Bits {
		return "block.cipher_width cannot hold a key.bits modulus"
	}
	return ""
}

type validationError struct {
	message string
}

func newValidationError(message string) error {
	return &validationError{message: message}
}

func (e *validationError) Error() string {
	return "invalid configuration: " + e.message
}
