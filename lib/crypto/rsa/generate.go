package rsa

import (
	"crypto/rand"
	"math/big"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
)

// GenerateKey draws two distinct primes and derives a private key whose
// modulus has exactly the engine's bit size.
func (e *Engine) GenerateKey() (types.KeyHandle, error) {
	if e.bits < MinKeyBits {
		return nil, oops.Errorf("key size %d bits is below the minimum of %d", e.bits, MinKeyBits)
	}
	exp := big.NewInt(e.publicExponent)
	if exp.Cmp(big.NewInt(3)) < 0 || exp.Bit(0) == 0 {
		return nil, oops.Errorf("public exponent %d must be odd and at least 3", e.publicExponent)
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		p, err := rand.Prime(e.random, e.bits/2)
		if err != nil {
			return nil, oops.Wrapf(err, "failed to generate prime p")
		}
		q, err := rand.Prime(e.random, e.bits-e.bits/2)
		if err != nil {
			return nil, oops.Wrapf(err, "failed to generate prime q")
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() != e.bits {
			continue
		}
		totient := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
		d := new(big.Int).ModInverse(exp, totient)
		if d == nil {
			// gcd(e, totient) != 1
			continue
		}
		log.WithFields(logger.Fields{
			"at":       "Engine.GenerateKey",
			"bits":     e.bits,
			"attempts": attempt,
		}).Debug("Generated RSA key")
		return newKey(p, q, exp, d, n, totient, true), nil
	}
	return nil, oops.Errorf("no usable %d-bit key after %d attempts", e.bits, maxGenerateAttempts)
}
