package rsa

import (
	"math/big"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// LoadKey parses six canonical decimal strings into a Key.
//
// A record whose p, q, private exponent and totient are all zero is loaded
// as a public-only key. Any other record must be a consistent private key:
// p*q equals the modulus, (p-1)(q-1) equals the totient, and the exponents
// are inverse modulo the totient. Returns nil when the values are rejected.
func (e *Engine) LoadKey(p, q, publicExponent, privateExponent, modulus, totient string) types.KeyHandle {
	vals, err := parseAll(p, q, publicExponent, privateExponent, modulus, totient)
	if err != nil {
		log.WithError(err).WithField("at", "Engine.LoadKey").Debug("Rejected key material")
		return nil
	}
	kp, kq, ke, kd, kn, kt := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]

	if isPublicOnly(kp, kq, kd, kt) {
		if err := validatePublic(ke, kn); err != nil {
			log.WithError(err).WithField("at", "Engine.LoadKey").Debug("Rejected public key")
			return nil
		}
		log.WithField("modulus_bits", kn.BitLen()).Debug("Loaded public-only RSA key")
		return newKey(kp, kq, ke, kd, kn, kt, false)
	}

	if err := validatePrivate(kp, kq, ke, kd, kn, kt); err != nil {
		log.WithError(err).WithField("at", "Engine.LoadKey").Debug("Rejected private key")
		return nil
	}
	log.WithFields(logger.Fields{
		"at":           "Engine.LoadKey",
		"modulus_bits": kn.BitLen(),
	}).Debug("Loaded private RSA key")
	return newKey(kp, kq, ke, kd, kn, kt, true)
}

// ExportKey returns the key's six integers as canonical decimal strings.
func (e *Engine) ExportKey(handle types.KeyHandle) (p, q, publicExponent, privateExponent, modulus, totient string, err error) {
	k, ok := handle.(*Key)
	if !ok || k == nil {
		err = oops.Errorf("key handle %T was not produced by the RSA engine", handle)
		return
	}
	if k.released {
		err = oops.Errorf("cannot export a released key")
		return
	}
	return k.p.String(), k.q.String(), k.e.String(), k.d.String(), k.n.String(), k.totient.String(), nil
}

func parseAll(fields ...string) ([]*big.Int, error) {
	vals := make([]*big.Int, len(fields))
	for i, s := range fields {
		v, err := parseCanonical(s)
		if err != nil {
			return nil, oops.Wrapf(err, "field %d", i)
		}
		vals[i] = v
	}
	return vals, nil
}

// parseCanonical accepts base-10 digits with no sign and no leading zero,
// except for the literal "0".
func parseCanonical(s string) (*big.Int, error) {
	if s == "" {
		return nil, oops.Errorf("empty integer string")
	}
	if len(s) > 1 && s[0] == '0' {
		return nil, oops.Errorf("integer %q has a leading zero", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, oops.Errorf("integer %q is not base-10", s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, oops.Errorf("integer %q could not be parsed", s)
	}
	return v, nil
}

func isPublicOnly(p, q, d, totient *big.Int) bool {
	return p.Sign() == 0 && q.Sign() == 0 && d.Sign() == 0 && totient.Sign() == 0
}

func validatePublic(e, n *big.Int) error {
	if n.Cmp(one) <= 0 {
		return oops.Errorf("modulus must be greater than 1")
	}
	if n.Bit(0) == 0 {
		return oops.Errorf("modulus must be odd")
	}
	if e.Cmp(one) <= 0 || e.Cmp(n) >= 0 {
		return oops.Errorf("public exponent out of range")
	}
	return nil
}

func validatePrivate(p, q, e, d, n, totient *big.Int) error {
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return oops.Errorf("prime factors must be greater than 1")
	}
	if err := validatePublic(e, n); err != nil {
		return err
	}
	if new(big.Int).Mul(p, q).Cmp(n) != 0 {
		return oops.Errorf("modulus is not p*q")
	}
	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)
	if new(big.Int).Mul(pm1, qm1).Cmp(totient) != 0 {
		return oops.Errorf("totient is not (p-1)(q-1)")
	}
	if e.Cmp(one) <= 0 || e.Cmp(totient) >= 0 {
		return oops.Errorf("public exponent out of range")
	}
	if d.Cmp(zero) <= 0 {
		return oops.Errorf("private exponent must be positive")
	}
	ed := new(big.Int).Mul(e, d)
	if ed.Mod(ed, totient).Cmp(one) != 0 {
		return oops.Errorf("exponents are not inverse modulo the totient")
	}
	return nil
}
