// Package rsa implements the arbitrary-precision RSA primitive behind the
// block driver: key generation, key loading and validation, export, and the
// per-block modular exponentiation.
//
// Key material is handled as decimal integer strings at the package boundary
// and as math/big integers internally. The block transform itself runs on
// saferith's constant-time natural numbers.
package rsa

import (
	"io"

	"github.com/go-i2p/crypto/rand"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

const (
	// MinKeyBits is the smallest modulus size GenerateKey accepts
	MinKeyBits = 64
	// maxGenerateAttempts bounds the prime search retry loop
	maxGenerateAttempts = 64
)

// Engine is the real RSA primitive. It is safe to share between operations;
// all per-key state lives in the handles it returns.
type Engine struct {
	bits           int
	publicExponent int64
	random         io.Reader
}

// NewEngine returns an engine that generates keys with a modulus of the given
// bit size and the given public exponent.
func NewEngine(bits int, publicExponent int64) *Engine {
	return &Engine{
		bits:           bits,
		publicExponent: publicExponent,
		random:         rand.Reader,
	}
}

// Bits returns the modulus size used by GenerateKey.
func (e *Engine) Bits() int {
	return e.bits
}
